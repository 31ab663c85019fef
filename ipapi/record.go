package ipapi

import (
	"fmt"

	"geolookup/geo"
)

// Field names accepted in a field selection.
const (
	FieldStatus        = "status"
	FieldMessage       = "message"
	FieldContinent     = "continent"
	FieldContinentCode = "continentCode"
	FieldCountry       = "country"
	FieldCountryCode   = "countryCode"
	FieldRegion        = "region"
	FieldRegionName    = "regionName"
	FieldCity          = "city"
	FieldDistrict      = "district"
	FieldZip           = "zip"
	FieldLat           = "lat"
	FieldLon           = "lon"
	FieldTimezone      = "timezone"
	FieldOffset        = "offset"
	FieldCurrency      = "currency"
	FieldISP           = "isp"
	FieldOrg           = "org"
	FieldAS            = "as"
	FieldASName        = "asname"
	FieldReverse       = "reverse"
	FieldMobile        = "mobile"
	FieldProxy         = "proxy"
	FieldHosting       = "hosting"
	FieldQuery         = "query"
)

var AllFields = []string{
	FieldStatus, FieldMessage, FieldContinent, FieldContinentCode, FieldCountry,
	FieldCountryCode, FieldRegion, FieldRegionName, FieldCity, FieldDistrict,
	FieldZip, FieldLat, FieldLon, FieldTimezone, FieldOffset, FieldCurrency,
	FieldISP, FieldOrg, FieldAS, FieldASName, FieldReverse, FieldMobile,
	FieldProxy, FieldHosting, FieldQuery,
}

const statusSuccess = "success"

// Record is one ip-api.com answer. A nil field was absent from the payload.
type Record struct {
	Status        *string  `json:"status,omitempty"`
	Message       *string  `json:"message,omitempty"`
	Continent     *string  `json:"continent,omitempty"`
	ContinentCode *string  `json:"continentCode,omitempty"`
	Country       *string  `json:"country,omitempty"`
	CountryCode   *string  `json:"countryCode,omitempty"`
	Region        *string  `json:"region,omitempty"`
	RegionName    *string  `json:"regionName,omitempty"`
	City          *string  `json:"city,omitempty"`
	District      *string  `json:"district,omitempty"`
	Zip           *string  `json:"zip,omitempty"`
	Lat           *float64 `json:"lat,omitempty"`
	Lon           *float64 `json:"lon,omitempty"`
	Timezone      *string  `json:"timezone,omitempty"`
	// Offset is the UTC offset in seconds.
	Offset   *int    `json:"offset,omitempty"`
	Currency *string `json:"currency,omitempty"`
	ISP      *string `json:"isp,omitempty"`
	Org      *string `json:"org,omitempty"`
	AS       *string `json:"as,omitempty"`
	ASName   *string `json:"asname,omitempty"`
	Reverse  *string `json:"reverse,omitempty"`
	Mobile   *bool   `json:"mobile,omitempty"`
	Proxy    *bool   `json:"proxy,omitempty"`
	Hosting  *bool   `json:"hosting,omitempty"`
	// Query echoes the subject, or the caller's address for self lookups.
	Query string `json:"query"`
}

func (r *Record) Success() bool {
	return r.Status != nil && *r.Status == statusSuccess
}

// Failed is true only when the status field was sent and is not success.
func (r *Record) Failed() bool {
	return r.Status != nil && *r.Status != statusSuccess
}

func (r *Record) Address() string {
	return geo.JoinAddress(r.District, r.City, r.RegionName, r.Country)
}

func (r *Record) Validate(req geo.Request) error {
	if geo.Selected(req, FieldQuery) && r.Query == "" {
		return fmt.Errorf("ip-api response is missing required field %q", FieldQuery)
	}
	return nil
}
