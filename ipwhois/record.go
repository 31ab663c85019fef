package ipwhois

import (
	"fmt"

	"geolookup/geo"
)

// Record is one ipwho.is answer. On failure the vendor sends success=false
// and a message, and usually echoes the ip back.
type Record struct {
	IP            *string     `json:"ip,omitempty"`
	Succeeded     *bool       `json:"success,omitempty"`
	Message       *string     `json:"message,omitempty"`
	Type          *string     `json:"type,omitempty"`
	Continent     *string     `json:"continent,omitempty"`
	ContinentCode *string     `json:"continent_code,omitempty"`
	Country       *string     `json:"country,omitempty"`
	CountryCode   *string     `json:"country_code,omitempty"`
	Region        *string     `json:"region,omitempty"`
	RegionCode    *string     `json:"region_code,omitempty"`
	City          *string     `json:"city,omitempty"`
	Latitude      *float64    `json:"latitude,omitempty"`
	Longitude     *float64    `json:"longitude,omitempty"`
	IsEU          *bool       `json:"is_eu,omitempty"`
	Postal        *string     `json:"postal,omitempty"`
	CallingCode   *string     `json:"calling_code,omitempty"`
	Capital       *string     `json:"capital,omitempty"`
	Borders       *string     `json:"borders,omitempty"`
	Flag          *Flag       `json:"flag,omitempty"`
	Connection    *Connection `json:"connection,omitempty"`
	TimeZone      *TimeZone   `json:"timezone,omitempty"`
}

type Flag struct {
	Img          *string `json:"img,omitempty"`
	Emoji        *string `json:"emoji,omitempty"`
	EmojiUnicode *string `json:"emoji_unicode,omitempty"`
}

type Connection struct {
	ASN    *int64  `json:"asn,omitempty"`
	Org    *string `json:"org,omitempty"`
	ISP    *string `json:"isp,omitempty"`
	Domain *string `json:"domain,omitempty"`
}

type TimeZone struct {
	ID    *string `json:"id,omitempty"`
	Abbr  *string `json:"abbr,omitempty"`
	IsDST *bool   `json:"is_dst,omitempty"`
	// Offset is in seconds.
	Offset      *int    `json:"offset,omitempty"`
	UTC         *string `json:"utc,omitempty"`
	CurrentTime *string `json:"current_time,omitempty"`
}

// Success reports the vendor's own success flag. A missing flag is a failure.
func (r *Record) Success() bool {
	return r.Succeeded != nil && *r.Succeeded
}

// Failed is true only when the success flag was sent and is false.
func (r *Record) Failed() bool {
	return r.Succeeded != nil && !*r.Succeeded
}

func (r *Record) Address() string {
	return geo.JoinAddress(r.City, r.Region, r.Postal, r.Country)
}

func (r *Record) Validate(req geo.Request) error {
	if r.Failed() {
		return nil
	}
	if geo.Selected(req, "ip") && r.IP == nil {
		return fmt.Errorf("ipwho.is response is missing required field %q", "ip")
	}
	return nil
}
