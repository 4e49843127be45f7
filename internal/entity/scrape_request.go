package entity

// ScrapeRequest is an immutable request to run one source.
type ScrapeRequest struct {
	source      Source
	parameters  Params
	requestedBy string
}

func NewScrapeRequest(source Source, parameters Params, requestedBy string) ScrapeRequest {
	return ScrapeRequest{
		source:      source,
		parameters:  parameters.Clone(),
		requestedBy: requestedBy,
	}
}

func (r ScrapeRequest) Source() Source { return r.source }

// Parameters returns a copy of the request parameters.
func (r ScrapeRequest) Parameters() Params { return r.parameters.Clone() }

func (r ScrapeRequest) RequestedBy() string { return r.requestedBy }
