package olhovivo

import (
	"context"
	"net/url"
	"strconv"
)

// GetForecast returns arrival forecasts. A zero code means "not given".
//
// With a stop code the result is a ForecastWithStop, narrowed to one route
// when routeCode is also set. With only a route code the result is a
// ForecastWithStops covering every stop of the route.
func (c *Client) GetForecast(ctx context.Context, stopCode, routeCode int) (Forecast, error) {
	var (
		f   Forecast
		err error
	)
	switch {
	case stopCode != 0 && routeCode != 0:
		f, err = c.ForecastForStopAndRoute(ctx, stopCode, routeCode)
	case stopCode != 0:
		f, err = c.ForecastForStop(ctx, stopCode)
	case routeCode != 0:
		f, err = c.ForecastForRoute(ctx, routeCode)
	default:
		return nil, ErrForecastCodeRequired
	}
	if err != nil {
		return nil, err
	}
	return f, nil
}

// ForecastForStopAndRoute returns the arrivals of one route at one stop.
func (c *Client) ForecastForStopAndRoute(ctx context.Context, stopCode, routeCode int) (ForecastWithStop, error) {
	return fetchOne[ForecastWithStop](ctx, c, "forecast", EndpointForecast, ForecastWithStopRecord,
		url.Values{
			"codigoParada": {strconv.Itoa(stopCode)},
			"codigoLinha":  {strconv.Itoa(routeCode)},
		})
}

// ForecastForStop returns the arrivals of every route serving a stop.
func (c *Client) ForecastForStop(ctx context.Context, stopCode int) (ForecastWithStop, error) {
	return fetchOne[ForecastWithStop](ctx, c, "forecast_by_stop", EndpointForecastByStop, ForecastWithStopRecord,
		url.Values{"codigoParada": {strconv.Itoa(stopCode)}})
}

// ForecastForRoute returns the arrivals of a route at each of its stops.
func (c *Client) ForecastForRoute(ctx context.Context, routeCode int) (ForecastWithStops, error) {
	return fetchOne[ForecastWithStops](ctx, c, "forecast_by_route", EndpointForecastByRoute, ForecastWithStopsRecord,
		url.Values{"codigoLinha": {strconv.Itoa(routeCode)}})
}
