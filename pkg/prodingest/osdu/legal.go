package osdu

import "fmt"

// LegalInfo carries the access control lists and legal tags applied to
// records created for a country.
type LegalInfo struct {
	ViewerACL []string `json:"viewer_acl"`
	OwnerACL  []string `json:"owner_acl"`
	LegalTags []string `json:"legal_tags"`
	Countries []string `json:"countries"`
}

// legalByCountry is the static legal-metadata table. One entry per country
// the pipeline is deployed for.
var legalByCountry = map[string]LegalInfo{
	"PE": {
		ViewerACL: []string{"data.default.viewers@pe.dataservices.energy"},
		OwnerACL:  []string{"data.default.owners@pe.dataservices.energy"},
		LegalTags: []string{"pe-public-usa-dataset-1"},
		Countries: []string{"PE"},
	},
	"EC": {
		ViewerACL: []string{"data.default.viewers@ec.dataservices.energy"},
		OwnerACL:  []string{"data.default.owners@ec.dataservices.energy"},
		LegalTags: []string{"ec-public-usa-dataset-1"},
		Countries: []string{"EC"},
	},
	"CO": {
		ViewerACL: []string{"data.default.viewers@co.dataservices.energy"},
		OwnerACL:  []string{"data.default.owners@co.dataservices.energy"},
		LegalTags: []string{"co-public-usa-dataset-1"},
		Countries: []string{"CO"},
	},
}

// LegalForCountry returns the legal metadata for a country code.
func LegalForCountry(code string) (LegalInfo, error) {
	info, ok := legalByCountry[code]
	if !ok {
		return LegalInfo{}, fmt.Errorf("no legal metadata configured for country %q", code)
	}
	return info, nil
}
