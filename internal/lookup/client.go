package lookup

import (
	"context"
	"fmt"
	"time"

	"github.com/go-resty/resty/v2"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
)

var tracer = otel.Tracer("patient-intake/lookup")

// datastoreResponse is the datastore_search envelope of the open-data API.
type datastoreResponse struct {
	Success bool `json:"success"`
	Result  struct {
		Records []datastoreRecord `json:"records"`
	} `json:"result"`
}

type datastoreRecord struct {
	Code     string `json:"code"`
	Name     string `json:"name"`
	CityCode string `json:"city_code"`
}

// DatastoreClient implements Provider against a CKAN-style datastore API.
// Each dataset (cities, streets) is addressed by a resource ID under a
// shared base URL.
type DatastoreClient struct {
	http             *resty.Client
	cityResourceID   string
	streetResourceID string
}

// DatastoreOptions configures a DatastoreClient.
type DatastoreOptions struct {
	BaseURL          string
	CityResourceID   string
	StreetResourceID string
	Timeout          time.Duration
}

// NewDatastoreClient creates a datastore-backed provider.
func NewDatastoreClient(opts DatastoreOptions) *DatastoreClient {
	client := resty.New().
		SetBaseURL(opts.BaseURL).
		SetTimeout(opts.Timeout).
		SetHeader("Accept", "application/json")

	return &DatastoreClient{
		http:             client,
		cityResourceID:   opts.CityResourceID,
		streetResourceID: opts.StreetResourceID,
	}
}

// Cities searches the city dataset.
func (c *DatastoreClient) Cities(ctx context.Context, query string, limit int) ([]Candidate, error) {
	return c.search(ctx, "city", c.cityResourceID, query, "", limit)
}

// Streets searches the street dataset within one city.
func (c *DatastoreClient) Streets(ctx context.Context, query, cityCode string, limit int) ([]Candidate, error) {
	return c.search(ctx, "street", c.streetResourceID, query, cityCode, limit)
}

func (c *DatastoreClient) search(ctx context.Context, entity, resourceID, query, cityCode string, limit int) ([]Candidate, error) {
	ctx, span := tracer.Start(ctx, "lookup.datastore_search")
	defer span.End()
	span.SetAttributes(
		attribute.String("lookup.entity", entity),
		attribute.String("lookup.resource_id", resourceID),
	)

	req := c.http.R().
		SetContext(ctx).
		SetQueryParam("resource_id", resourceID).
		SetQueryParam("q", query).
		SetQueryParam("limit", fmt.Sprintf("%d", limit))
	if cityCode != "" {
		req.SetQueryParam("city_code", cityCode)
	}

	var body datastoreResponse
	resp, err := req.SetResult(&body).Get("/datastore_search")
	if err != nil {
		return nil, fmt.Errorf("datastore search %s: %w", entity, err)
	}
	if resp.IsError() {
		return nil, fmt.Errorf("datastore search %s: unexpected status %d", entity, resp.StatusCode())
	}
	if !body.Success {
		return nil, fmt.Errorf("datastore search %s: provider reported failure", entity)
	}

	candidates := make([]Candidate, 0, len(body.Result.Records))
	for _, rec := range body.Result.Records {
		candidates = append(candidates, Candidate{Code: rec.Code, Name: rec.Name})
	}
	return candidates, nil
}
