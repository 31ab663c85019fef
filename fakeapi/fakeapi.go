package fakeapi

import (
	"net"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"

	jsoniter "github.com/json-iterator/go"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

// Route prefixes, one per vendor wire format.
const (
	IPAPIPath    = "/json"
	IPAPIComPath = "/api"
	IPWhoisPath  = "/whois"
)

// Location is what the fake answers for every public address.
type Location struct {
	Country     string
	CountryCode string
	Region      string
	RegionCode  string
	City        string
	Zip         string
	Lat         float64
	Lon         float64
}

var DefaultLocation = Location{
	Country:     "United States",
	CountryCode: "US",
	Region:      "Washington",
	RegionCode:  "WA",
	City:        "Seattle",
	Zip:         "98101",
	Lat:         47.6062,
	Lon:         -122.3321,
}

// Server fakes ip-api.com, ipapi.com and ipwho.is on one httptest server.
// Private and reserved addresses get each vendor's failure body.
type Server struct {
	*httptest.Server

	mu       sync.Mutex
	location Location
	status   int
	requests []string
}

func New() *Server {
	s := &Server{location: DefaultLocation, status: http.StatusOK}
	mux := http.NewServeMux()
	mux.HandleFunc(IPAPIPath, s.handleIPAPI)
	mux.HandleFunc(IPAPIPath+"/", s.handleIPAPI)
	mux.HandleFunc(IPAPIComPath+"/", s.handleIPAPICom)
	mux.HandleFunc(IPWhoisPath+"/", s.handleIPWhois)
	s.Server = httptest.NewServer(s.record(mux))
	return s
}

// Endpoint returns the base URL to configure for a vendor client.
func (s *Server) Endpoint(prefix string) string {
	return s.URL + prefix
}

func (s *Server) SetLocation(loc Location) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.location = loc
}

// SetStatus makes every following request answer with status and an empty
// JSON object.
func (s *Server) SetStatus(status int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.status = status
}

// Requests returns the request URIs seen so far.
func (s *Server) Requests() []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]string(nil), s.requests...)
}

func (s *Server) record(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		s.mu.Lock()
		s.requests = append(s.requests, r.URL.RequestURI())
		status := s.status
		s.mu.Unlock()

		if status != http.StatusOK {
			writeJSON(w, status, map[string]any{})
			return
		}
		next.ServeHTTP(w, r)
	})
}

func (s *Server) current() Location {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.location
}

func (s *Server) handleIPAPI(w http.ResponseWriter, r *http.Request) {
	ip := strings.Trim(strings.TrimPrefix(r.URL.Path, IPAPIPath), "/")
	if ip == "" {
		ip, _, _ = net.SplitHostPort(r.RemoteAddr)
	}
	if reserved(ip) {
		writeJSON(w, http.StatusOK, map[string]any{
			"status":  "fail",
			"message": "reserved range",
			"query":   ip,
		})
		return
	}
	loc := s.current()
	writeJSON(w, http.StatusOK, map[string]any{
		"status":      "success",
		"country":     loc.Country,
		"countryCode": loc.CountryCode,
		"region":      loc.RegionCode,
		"regionName":  loc.Region,
		"city":        loc.City,
		"zip":         loc.Zip,
		"lat":         loc.Lat,
		"lon":         loc.Lon,
		"query":       ip,
	})
}

func (s *Server) handleIPAPICom(w http.ResponseWriter, r *http.Request) {
	ip := strings.Trim(strings.TrimPrefix(r.URL.Path, IPAPIComPath), "/")
	if r.URL.Query().Get("access_key") == "" {
		writeJSON(w, http.StatusOK, map[string]any{
			"success": false,
			"error": map[string]any{
				"code": 101,
				"type": "missing_access_key",
				"info": "You have not supplied an API Access Key.",
			},
		})
		return
	}
	loc := s.current()
	body := map[string]any{"ip": ip}
	if !reserved(ip) {
		body["country_code"] = loc.CountryCode
		body["country_name"] = loc.Country
		body["region_code"] = loc.RegionCode
		body["region_name"] = loc.Region
		body["city"] = loc.City
		body["zip"] = loc.Zip
		body["latitude"] = loc.Lat
		body["longitude"] = loc.Lon
	}
	writeJSON(w, http.StatusOK, body)
}

func (s *Server) handleIPWhois(w http.ResponseWriter, r *http.Request) {
	ip := strings.Trim(strings.TrimPrefix(r.URL.Path, IPWhoisPath), "/")
	if reserved(ip) {
		writeJSON(w, http.StatusOK, map[string]any{
			"ip":      ip,
			"success": false,
			"message": "Reserved range",
		})
		return
	}
	loc := s.current()
	writeJSON(w, http.StatusOK, map[string]any{
		"ip":           ip,
		"success":      true,
		"country":      loc.Country,
		"country_code": loc.CountryCode,
		"region":       loc.Region,
		"region_code":  loc.RegionCode,
		"city":         loc.City,
		"postal":       loc.Zip,
		"latitude":     loc.Lat,
		"longitude":    loc.Lon,
	})
}

func reserved(ip string) bool {
	addr := net.ParseIP(ip)
	if addr == nil {
		return false
	}
	return addr.IsPrivate() || addr.IsLoopback() || addr.IsUnspecified() || addr.IsLinkLocalUnicast()
}

func writeJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(body)
}
