package ipapicom

import (
	"fmt"

	"geolookup/geo"
)

// Record is one ipapi.com standard-lookup answer. Failed requests carry only
// Success=false and Error.
type Record struct {
	IP            *string     `json:"ip,omitempty"`
	Hostname      *string     `json:"hostname,omitempty"`
	Type          *string     `json:"type,omitempty"`
	ContinentCode *string     `json:"continent_code,omitempty"`
	ContinentName *string     `json:"continent_name,omitempty"`
	CountryCode   *string     `json:"country_code,omitempty"`
	CountryName   *string     `json:"country_name,omitempty"`
	RegionCode    *string     `json:"region_code,omitempty"`
	RegionName    *string     `json:"region_name,omitempty"`
	City          *string     `json:"city,omitempty"`
	Zip           *string     `json:"zip,omitempty"`
	Latitude      *float64    `json:"latitude,omitempty"`
	Longitude     *float64    `json:"longitude,omitempty"`
	Location      *Location   `json:"location,omitempty"`
	TimeZone      *TimeZone   `json:"time_zone,omitempty"`
	Currency      *Currency   `json:"currency,omitempty"`
	Connection    *Connection `json:"connection,omitempty"`
	Security      *Security   `json:"security,omitempty"`

	Succeeded *bool     `json:"success,omitempty"`
	Error     *APIError `json:"error,omitempty"`
}

type Location struct {
	GeonameID        *int64  `json:"geoname_id,omitempty"`
	Capital          *string `json:"capital,omitempty"`
	CountryFlagEmoji *string `json:"country_flag_emoji,omitempty"`
	CallingCode      *string `json:"calling_code,omitempty"`
	IsEU             *bool   `json:"is_eu,omitempty"`
}

type TimeZone struct {
	ID          *string `json:"id,omitempty"`
	CurrentTime *string `json:"current_time,omitempty"`
	// GMTOffset is in seconds.
	GMTOffset        *int    `json:"gmt_offset,omitempty"`
	Code             *string `json:"code,omitempty"`
	IsDaylightSaving *bool   `json:"is_daylight_saving,omitempty"`
}

type Currency struct {
	Code   *string `json:"code,omitempty"`
	Name   *string `json:"name,omitempty"`
	Symbol *string `json:"symbol,omitempty"`
}

type Connection struct {
	ASN *int64  `json:"asn,omitempty"`
	ISP *string `json:"isp,omitempty"`
}

type Security struct {
	IsProxy     *bool   `json:"is_proxy,omitempty"`
	ProxyType   *string `json:"proxy_type,omitempty"`
	IsCrawler   *bool   `json:"is_crawler,omitempty"`
	IsTor       *bool   `json:"is_tor,omitempty"`
	ThreatLevel *string `json:"threat_level,omitempty"`
}

// APIError is the vendor's error envelope, e.g. code 101 missing_access_key.
type APIError struct {
	Code int    `json:"code"`
	Type string `json:"type"`
	Info string `json:"info"`
}

func (r *Record) Success() bool {
	if r.Error != nil {
		return false
	}
	if r.Succeeded != nil && !*r.Succeeded {
		return false
	}
	return r.IP != nil
}

// Failed is true when the vendor sent its error envelope or success=false.
func (r *Record) Failed() bool {
	return r.Error != nil || (r.Succeeded != nil && !*r.Succeeded)
}

func (r *Record) Address() string {
	return geo.JoinAddress(r.City, r.RegionName, r.Zip, r.CountryName)
}

func (r *Record) Validate(req geo.Request) error {
	if r.Failed() {
		return nil
	}
	if geo.Selected(req, "ip") && r.IP == nil {
		return fmt.Errorf("ipapi.com response is missing required field %q", "ip")
	}
	return nil
}
