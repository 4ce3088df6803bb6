package fhir_dto

import "github.com/goccy/go-json"

type FHIRBundle struct {
	ResourceType string  `json:"resourceType"`
	ID           string  `json:"id,omitempty"`
	Type         string  `json:"type"`
	Total        int     `json:"total,omitempty"`
	Entry        []Entry `json:"entry,omitempty"`
}

type Entry struct {
	FullUrl  string          `json:"fullUrl,omitempty"`
	Resource json.RawMessage `json:"resource,omitempty"`
	Request  *EntryRequest   `json:"request,omitempty"`
	Response *EntryResponse  `json:"response,omitempty"`
}

type EntryRequest struct {
	Method string `json:"method"`
	Url    string `json:"url"`
}

type EntryResponse struct {
	Status   string `json:"status"`
	Location string `json:"location,omitempty"`
}
