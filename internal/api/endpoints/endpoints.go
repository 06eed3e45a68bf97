package endpoints

import (
	"context"
	"fmt"
	"strings"
	"travel-matrix-service/internal/adapters/addressbook"
	"travel-matrix-service/internal/domain"
	"travel-matrix-service/internal/ports"
	"travel-matrix-service/internal/services"

	"github.com/go-kit/kit/endpoint"
)

// MatrixRequest is the decoded form of a matrix or export request.
type MatrixRequest struct {
	Origin       string
	Destinations []domain.Destination
}

// MatrixResponse carries the computed table and the origin it was built from.
type MatrixResponse struct {
	Origin string
	Table  domain.ResultTable
}

// SourceError reports a failure of the server's configured destination
// source. It is never the client's fault, whatever error it wraps.
type SourceError struct {
	Err error
}

func (e *SourceError) Error() string {
	return fmt.Sprintf("destination source: %v", e.Err)
}

func (e *SourceError) Unwrap() error { return e.Err }

type Set struct {
	MatrixEndpoint endpoint.Endpoint
	ExportEndpoint endpoint.Endpoint
}

func NewEndpointSet(builder ports.TravelMatrixBuilder, source ports.DestinationSource, defaultOrigin string) Set {
	ep := MakeMatrixEndpoint(builder, source, defaultOrigin)
	return Set{
		MatrixEndpoint: ep,
		// Same computation; only the transport encoding differs.
		ExportEndpoint: ep,
	}
}

// MakeMatrixEndpoint computes the result table. Request destinations take
// precedence over the configured source; a failing configured source yields
// a *SourceError.
func MakeMatrixEndpoint(builder ports.TravelMatrixBuilder, source ports.DestinationSource, defaultOrigin string) endpoint.Endpoint {
	return func(ctx context.Context, request interface{}) (interface{}, error) {
		req, ok := request.(MatrixRequest)
		if !ok {
			return nil, fmt.Errorf("matrix endpoint: unexpected request type %T", request)
		}

		origin := strings.TrimSpace(req.Origin)
		if origin == "" {
			origin = strings.TrimSpace(defaultOrigin)
		}
		if origin == "" {
			return nil, &domain.MalformedInputError{Reason: "origin is required"}
		}

		destinations := req.Destinations
		if len(destinations) == 0 {
			if source == nil {
				return nil, &domain.MalformedInputError{Reason: "destinations are required"}
			}
			listed, err := source.ListDestinations(ctx)
			if err != nil {
				return nil, &SourceError{Err: err}
			}
			destinations = listed
		}

		table, err := services.ComputeAndDisplay(ctx, builder, origin, addressbook.List(destinations))
		if err != nil {
			return nil, err
		}
		return MatrixResponse{Origin: origin, Table: table}, nil
	}
}
