package olhovivo

import "time"

// Route is a bus line in one direction. Code identifies the line and
// direction pair and is the code other endpoints expect.
type Route struct {
	Code      int    `record:"code" json:"code"`
	Circular  bool   `record:"circular" json:"circular"`
	Sign      string `record:"sign" json:"sign"`
	Direction int    `record:"direction" json:"direction"`
	Type      int    `record:"type" json:"type"`
	// MainToSec is the destination shown from the main terminal to the
	// secondary one. SecToMain is the opposite direction.
	MainToSec string  `record:"main_to_sec" json:"mainToSec"`
	SecToMain string  `record:"sec_to_main" json:"secToMain"`
	Info      *string `record:"info" json:"info"`
}

// Stop is a bus stop.
type Stop struct {
	Code      int     `record:"code" json:"code"`
	Name      string  `record:"name" json:"name"`
	Address   string  `record:"address" json:"address"`
	Latitude  float64 `record:"latitude" json:"lat"`
	Longitude float64 `record:"longitude" json:"lon"`
}

// Lane is a dedicated bus corridor.
type Lane struct {
	Code int    `record:"code" json:"code"`
	Cot  int    `record:"cot" json:"cot"`
	Name string `record:"name" json:"name"`
}

// Vehicle is the last reported position of a bus.
type Vehicle struct {
	Plate      string  `record:"plate" json:"plate"`
	Accessible bool    `record:"accessible" json:"accessible"`
	Latitude   float64 `record:"latitude" json:"lat"`
	Longitude  float64 `record:"longitude" json:"lon"`
}

// Positions holds the vehicles of a route at the time the service reported.
type Positions struct {
	Time     time.Time `record:"time" json:"time"`
	Vehicles []Vehicle `record:"vehicles" json:"vehicles"`
}

// VehicleForecast is a vehicle with its predicted arrival at a stop.
type VehicleForecast struct {
	Plate      string    `record:"plate" json:"plate"`
	ArrivingAt time.Time `record:"arriving_at" json:"arrivingAt"`
	Accessible bool      `record:"accessible" json:"accessible"`
	Latitude   float64   `record:"latitude" json:"lat"`
	Longitude  float64   `record:"longitude" json:"lon"`
}

// RouteWithVehicles is a route serving a stop, with its approaching vehicles.
type RouteWithVehicles struct {
	Sign      string            `record:"sign" json:"sign"`
	Code      int               `record:"code" json:"code"`
	Direction int               `record:"direction" json:"direction"`
	MainToSec string            `record:"main_to_sec" json:"mainToSec"`
	SecToMain string            `record:"sec_to_main" json:"secToMain"`
	Quantity  int               `record:"quantity" json:"quantity"`
	Vehicles  []VehicleForecast `record:"vehicles" json:"vehicles"`
}

// StopWithRoutes is a stop with the routes expected to call at it.
type StopWithRoutes struct {
	Code      int                 `record:"code" json:"code"`
	Name      string              `record:"name" json:"name"`
	Latitude  float64             `record:"latitude" json:"lat"`
	Longitude float64             `record:"longitude" json:"lon"`
	Routes    []RouteWithVehicles `record:"routes" json:"routes"`
}

// StopWithVehicles is a stop of one route with the vehicles approaching it.
type StopWithVehicles struct {
	Code      int               `record:"code" json:"code"`
	Name      string            `record:"name" json:"name"`
	Latitude  float64           `record:"latitude" json:"lat"`
	Longitude float64           `record:"longitude" json:"lon"`
	Vehicles  []VehicleForecast `record:"vehicles" json:"vehicles"`
}

// Forecast is the result of GetForecast: a ForecastWithStop when a stop was
// given, a ForecastWithStops when only a route was.
type Forecast interface {
	// ReportedAt is the time the service generated the forecast.
	ReportedAt() time.Time
	forecast()
}

// ForecastWithStop lists the arrivals expected at one stop.
type ForecastWithStop struct {
	Time time.Time      `record:"time" json:"time"`
	Stop StopWithRoutes `record:"stop" json:"stop"`
}

// ForecastWithStops lists the arrivals of one route at each of its stops.
type ForecastWithStops struct {
	Time  time.Time          `record:"time" json:"time"`
	Stops []StopWithVehicles `record:"stops" json:"stops"`
}

func (f ForecastWithStop) ReportedAt() time.Time  { return f.Time }
func (f ForecastWithStops) ReportedAt() time.Time { return f.Time }

func (ForecastWithStop) forecast()  {}
func (ForecastWithStops) forecast() {}
