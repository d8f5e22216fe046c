package converter

import (
	"patientor/internal/delivery/dto"
	"patientor/internal/form"
)

// FormRequestToActions turns a posted HTML form into reducer actions.
// Fields the browser did not send produce no action.
func FormRequestToActions(req *dto.EntryFormRequest) []form.Action {
	var actions []form.Action
	text := func(t form.ActionType, v *string) {
		if v != nil {
			actions = append(actions, form.Action{Type: t, Value: *v})
		}
	}

	text(form.ActionSetDescription, req.Description)
	text(form.ActionSetDate, req.Date)
	text(form.ActionSetSpecialist, req.Specialist)
	if req.DiagnosisCodes != nil {
		actions = append(actions, form.Action{Type: form.ActionSetDiagnosisCodes, Values: req.DiagnosisCodes})
	}
	text(form.ActionSetHealthCheckRating, req.HealthCheckRating)
	text(form.ActionSetEmployerName, req.EmployerName)
	text(form.ActionSetSickLeaveStart, req.SickLeaveStart)
	text(form.ActionSetSickLeaveEnd, req.SickLeaveEnd)
	text(form.ActionSetDischargeDate, req.DischargeDate)
	text(form.ActionSetDischargeCriteria, req.DischargeCriteria)
	return actions
}

func FormActionsFromRequest(req *dto.FormActionsRequest) []form.Action {
	actions := make([]form.Action, len(req.Actions))
	for i, a := range req.Actions {
		actions[i] = form.Action{Type: form.ActionType(a.Type), Value: a.Value, Values: a.Values}
	}
	return actions
}

func FormStateToResponse(s form.State, inputs []form.Field) dto.FormStateResponse {
	return dto.FormStateResponse{
		State:   s,
		Inputs:  inputs,
		Buttons: form.Buttons(s.Kind),
	}
}
