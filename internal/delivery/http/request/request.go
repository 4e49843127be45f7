// Package request decodes inbound HTTP bodies and query strings.
package request

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"strconv"
	"strings"

	"github.com/user/bizscrape-service/internal/entity"
	"github.com/user/bizscrape-service/internal/usecase"
)

// ErrInvalidBody is returned for bodies that are not a JSON object.
var ErrInvalidBody = errors.New("invalid request body")

// DecodeParams reads a JSON object body into scrape parameters. An empty body yields
// empty parameters.
func DecodeParams(r *http.Request) (entity.Params, error) {
	params := entity.Params{}
	if err := decode(r, &params); err != nil {
		return nil, err
	}
	return params, nil
}

func decode(r *http.Request, dst any) error {
	if r.Body == nil {
		return nil
	}
	err := json.NewDecoder(r.Body).Decode(dst)
	if errors.Is(err, io.EOF) {
		return nil
	}
	if err != nil {
		return ErrInvalidBody
	}
	return nil
}

type ProbeRequest struct {
	Query    string `json:"query"`
	Location string `json:"location"`
}

func DecodeProbe(r *http.Request) (ProbeRequest, error) {
	var req ProbeRequest
	err := decode(r, &req)
	return req, err
}

// Params converts the probe into Google search parameters.
func (p ProbeRequest) Params() entity.Params {
	params := entity.Params{"query": p.Query}
	if p.Location != "" {
		params["location"] = p.Location
	}
	return params
}

type CreateIndustryRequest struct {
	IndustryName string                    `json:"industryName"`
	Description  string                    `json:"description"`
	Parameters   entity.IndustryParameters `json:"parameters"`
	// MajorPlayers is either an array of names or a comma separated string.
	MajorPlayers json.RawMessage `json:"majorPlayers"`
}

func DecodeCreateIndustry(r *http.Request) (CreateIndustryRequest, error) {
	var req CreateIndustryRequest
	err := decode(r, &req)
	return req, err
}

func (c CreateIndustryRequest) Input() usecase.CreateIndustryInput {
	return usecase.CreateIndustryInput{
		Name:         c.IndustryName,
		Description:  c.Description,
		Parameters:   c.Parameters,
		MajorPlayers: ParsePlayers(c.MajorPlayers),
	}
}

// ParsePlayers accepts a JSON array of names or a comma separated string. Anything
// else yields no players.
func ParsePlayers(raw json.RawMessage) []string {
	if len(raw) == 0 {
		return nil
	}
	var list []string
	if err := json.Unmarshal(raw, &list); err == nil {
		return list
	}
	var joined string
	if err := json.Unmarshal(raw, &joined); err != nil {
		return nil
	}
	var out []string
	for _, p := range strings.Split(joined, ",") {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}

// QueryInt parses a positive integer query parameter, returning fallback when it is
// absent or malformed.
func QueryInt(r *http.Request, key string, fallback int) int {
	n, err := strconv.Atoi(r.URL.Query().Get(key))
	if err != nil || n < 1 {
		return fallback
	}
	return n
}
