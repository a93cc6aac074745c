package models

import (
	"fmt"

	"github.com/dmitrijs2005/greenkeeper/internal/common"
)

// HealthStatus is the user's exposure/infection state.
type HealthStatus string

const (
	HealthStatusNeutral  HealthStatus = "neutral"
	HealthStatusRisk     HealthStatus = "risk"
	HealthStatusPositive HealthStatus = "positive"
)

func (s HealthStatus) Valid() bool {
	switch s {
	case HealthStatusNeutral, HealthStatusRisk, HealthStatusPositive:
		return true
	}
	return false
}

func ParseHealthStatus(s string) (HealthStatus, error) {
	st := HealthStatus(s)
	if !st.Valid() {
		return "", fmt.Errorf("%w: unknown health status %q", common.ErrInvalidValue, s)
	}
	return st, nil
}
