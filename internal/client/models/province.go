// Package models defines the device-side user profile and the green
// certificates attached to it.
package models

import (
	"fmt"
	"sort"

	"github.com/dmitrijs2005/greenkeeper/internal/common"
)

// Province is the two-letter code of an Italian province. The zero value
// means "not chosen yet".
type Province string

const ProvinceUnset Province = ""

var provinces = map[Province]struct{}{
	"AG": {}, "AL": {}, "AN": {}, "AO": {}, "AP": {}, "AQ": {}, "AR": {}, "AT": {},
	"AV": {}, "BA": {}, "BG": {}, "BI": {}, "BL": {}, "BN": {}, "BO": {}, "BR": {},
	"BS": {}, "BT": {}, "BZ": {}, "CA": {}, "CB": {}, "CE": {}, "CH": {}, "CL": {},
	"CN": {}, "CO": {}, "CR": {}, "CS": {}, "CT": {}, "CZ": {}, "EN": {}, "FC": {},
	"FE": {}, "FG": {}, "FI": {}, "FM": {}, "FR": {}, "GE": {}, "GO": {}, "GR": {},
	"IM": {}, "IS": {}, "KR": {}, "LC": {}, "LE": {}, "LI": {}, "LO": {}, "LT": {},
	"LU": {}, "MB": {}, "MC": {}, "ME": {}, "MI": {}, "MN": {}, "MO": {}, "MS": {},
	"MT": {}, "NA": {}, "NO": {}, "NU": {}, "OR": {}, "PA": {}, "PC": {}, "PD": {},
	"PE": {}, "PG": {}, "PI": {}, "PN": {}, "PO": {}, "PR": {}, "PT": {}, "PU": {},
	"PV": {}, "PZ": {}, "RA": {}, "RC": {}, "RE": {}, "RG": {}, "RI": {}, "RM": {},
	"RN": {}, "RO": {}, "SA": {}, "SI": {}, "SO": {}, "SP": {}, "SR": {}, "SS": {},
	"SU": {}, "SV": {}, "TA": {}, "TE": {}, "TN": {}, "TO": {}, "TP": {}, "TR": {},
	"TS": {}, "TV": {}, "UD": {}, "VA": {}, "VB": {}, "VC": {}, "VE": {}, "VI": {},
	"VR": {}, "VT": {}, "VV": {},
}

// Valid reports whether p is a recognized province code. ProvinceUnset is not
// valid as a value to set.
func (p Province) Valid() bool {
	_, ok := provinces[p]
	return ok
}

// ParseProvince validates s as a province code.
func ParseProvince(s string) (Province, error) {
	p := Province(s)
	if !p.Valid() {
		return ProvinceUnset, fmt.Errorf("%w: unknown province %q", common.ErrInvalidValue, s)
	}
	return p, nil
}

// Provinces returns all recognized codes in alphabetical order.
func Provinces() []Province {
	out := make([]Province, 0, len(provinces))
	for p := range provinces {
		out = append(out, p)
	}
	sort.Slice(out, func(i, j int) bool { return out[i] < out[j] })
	return out
}
