package olhovivo

import (
	"context"
	"iter"
	"net/url"
	"strconv"

	"sptrans.olhovivo.dev/mapping"
)

// Endpoints of the v0 API, relative to the base URL.
const (
	EndpointSearchRoutes       = "Linha/Buscar"
	EndpointSearchStops        = "Parada/Buscar"
	EndpointSearchStopsByRoute = "Parada/BuscarParadasPorLinha"
	EndpointSearchStopsByLane  = "Parada/BuscarParadasPorCorredor"
	EndpointLanes              = "Corredor"
	EndpointPositions          = "Posicao"
	EndpointForecast           = "Previsao"
	EndpointForecastByStop     = "Previsao/Parada"
	EndpointForecastByRoute    = "Previsao/Linha"
)

// SearchRoutes finds routes by number or name, e.g. "8000" or "Lapa".
//
// Request failures are returned immediately. Records are decoded as the
// sequence is consumed, and a decode failure ends it.
func (c *Client) SearchRoutes(ctx context.Context, keywords string) (iter.Seq2[Route, error], error) {
	return fetchMany[Route](ctx, c, "search_routes", EndpointSearchRoutes, RouteRecord,
		url.Values{"termosBusca": {keywords}})
}

// SearchStops finds stops by name or address.
func (c *Client) SearchStops(ctx context.Context, keywords string) (iter.Seq2[Stop, error], error) {
	return fetchMany[Stop](ctx, c, "search_stops", EndpointSearchStops, StopRecord,
		url.Values{"termosBusca": {keywords}})
}

// SearchStopsByRoute lists the stops served by the route with the given code.
func (c *Client) SearchStopsByRoute(ctx context.Context, routeCode int) (iter.Seq2[Stop, error], error) {
	return fetchMany[Stop](ctx, c, "search_stops_by_route", EndpointSearchStopsByRoute, StopRecord,
		url.Values{"codigoLinha": {strconv.Itoa(routeCode)}})
}

// SearchStopsByLane lists the stops along the lane with the given code.
func (c *Client) SearchStopsByLane(ctx context.Context, laneCode int) (iter.Seq2[Stop, error], error) {
	return fetchMany[Stop](ctx, c, "search_stops_by_lane", EndpointSearchStopsByLane, StopRecord,
		url.Values{"codigoCorredor": {strconv.Itoa(laneCode)}})
}

// ListLanes lists every lane.
func (c *Client) ListLanes(ctx context.Context) (iter.Seq2[Lane, error], error) {
	return fetchMany[Lane](ctx, c, "list_lanes", EndpointLanes, LaneRecord, nil)
}

// GetPositions returns the current vehicle positions of a route.
func (c *Client) GetPositions(ctx context.Context, routeCode int) (Positions, error) {
	return fetchOne[Positions](ctx, c, "get_positions", EndpointPositions, PositionsRecord,
		url.Values{"codigoLinha": {strconv.Itoa(routeCode)}})
}

// Collect drains seq into a slice, stopping at the first error.
func Collect[T any](seq iter.Seq2[T, error]) ([]T, error) {
	out := []T{}
	for v, err := range seq {
		if err != nil {
			return nil, err
		}
		out = append(out, v)
	}
	return out, nil
}

func fetchMany[T any](ctx context.Context, c *Client, operation, endpoint, descriptor string, params url.Values) (iter.Seq2[T, error], error) {
	raw, err := c.getJSON(ctx, operation, endpoint, params)
	if err != nil {
		return nil, err
	}
	return mapping.DecodeMany[T](c.schema, descriptor, raw), nil
}

func fetchOne[T any](ctx context.Context, c *Client, operation, endpoint, descriptor string, params url.Values) (T, error) {
	raw, err := c.getJSON(ctx, operation, endpoint, params)
	if err != nil {
		var zero T
		return zero, err
	}
	return mapping.Decode[T](c.schema, descriptor, raw)
}
