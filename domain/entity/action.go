package entity

import (
	"encoding/json"
	"fmt"
)

// ActionName is the closed set of remediation actions a chat interaction
// can trigger. Anything else resolves to ErrUnknownAction.
type ActionName string

const (
	ActionRestartService ActionName = "restart_service"
	ActionViewTimeline   ActionName = "view_timeline"
	ActionAck            ActionName = "ack"
)

func ParseActionName(s string) (ActionName, error) {
	switch ActionName(s) {
	case ActionRestartService, ActionViewTimeline, ActionAck:
		return ActionName(s), nil
	}
	return "", fmt.Errorf("%w: %q", ErrUnknownAction, s)
}

// ActionParams carries the action-specific parameters from the button value.
type ActionParams struct {
	ServiceName string `json:"service_name"`
	ClusterName string `json:"cluster_name"`
}

// ActionRequest is a verified interactive-action payload. It is transient:
// constructed per request and never persisted as-is, only its effects reach
// the timeline.
type ActionRequest struct {
	IncidentID string
	Action     ActionName
	Actor      string
	Channel    string
	Params     ActionParams
}

type interactionPayload struct {
	User struct {
		Username string `json:"username"`
	} `json:"user"`
	Channel struct {
		ID string `json:"id"`
	} `json:"channel"`
	Actions []struct {
		Value string `json:"value"`
	} `json:"actions"`
}

type actionValue struct {
	IncidentID  string `json:"incident_id"`
	Action      string `json:"action"`
	ServiceName string `json:"service_name"`
	ClusterName string `json:"cluster_name"`
}

// ParseInteractionPayload decodes the JSON carried in the `payload` form
// field of a Slack interactive callback into an ActionRequest.
func ParseInteractionPayload(raw []byte) (*ActionRequest, error) {
	var payload interactionPayload
	if err := json.Unmarshal(raw, &payload); err != nil {
		return nil, fmt.Errorf("%w: %s", ErrMalformedPayload, err)
	}
	if len(payload.Actions) < 1 {
		return nil, fmt.Errorf("%w: actions is empty", ErrMalformedPayload)
	}

	var value actionValue
	if err := json.Unmarshal([]byte(payload.Actions[0].Value), &value); err != nil {
		return nil, fmt.Errorf("%w: action value: %s", ErrMalformedPayload, err)
	}
	if value.IncidentID == "" {
		return nil, fmt.Errorf("%w: incident_id is empty", ErrMalformedPayload)
	}

	name, err := ParseActionName(value.Action)
	if err != nil {
		return nil, err
	}

	return &ActionRequest{
		IncidentID: value.IncidentID,
		Action:     name,
		Actor:      payload.User.Username,
		Channel:    payload.Channel.ID,
		Params: ActionParams{
			ServiceName: value.ServiceName,
			ClusterName: value.ClusterName,
		},
	}, nil
}
