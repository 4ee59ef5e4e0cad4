package service

import (
	"projecthub/internal/authz"
	"projecthub/internal/domain"
)

// authorize runs the access-control evaluator and converts a denial
// into a domain authorization error carrying the reason code. The
// integrity error path (malformed resource snapshot) passes through
// unchanged so the boundary reports it as a defect, not a denial.
func authorize(p authz.Principal, action authz.Action, res authz.Resource, message string) error {
	dec, err := authz.Decide(p, action, res)
	if err != nil {
		return err
	}
	if !dec.Allowed {
		return &domain.AuthorizationError{Message: message, Reason: string(dec.Reason)}
	}
	return nil
}
