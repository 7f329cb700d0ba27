package olhovivo

import (
	"time"

	"sptrans.olhovivo.dev/mapping"
)

// Descriptor names registered by NewSchema.
const (
	RouteRecord             = "Route"
	StopRecord              = "Stop"
	LaneRecord              = "Lane"
	VehicleRecord           = "Vehicle"
	PositionsRecord         = "Positions"
	VehicleForecastRecord   = "VehicleForecast"
	RouteWithVehiclesRecord = "RouteWithVehicles"
	StopWithRoutesRecord    = "StopWithRoutes"
	StopWithVehiclesRecord  = "StopWithVehicles"
	ForecastWithStopRecord  = "ForecastWithStop"
	ForecastWithStopsRecord = "ForecastWithStops"
)

// NewSchema returns the descriptors of every Olho Vivo record. Clock times
// are placed on the date now returns; nil means time.Now.
func NewSchema(now func() time.Time) *mapping.Schema {
	clock := mapping.ClockTime(now)

	return mapping.MustSchema(
		mapping.MustDescriptor(RouteRecord,
			mapping.Direct("code", "CodigoLinha"),
			mapping.Direct("circular", "Circular"),
			mapping.Direct("sign", "Letreiro"),
			mapping.Direct("direction", "Sentido"),
			mapping.Direct("type", "Tipo"),
			mapping.Direct("main_to_sec", "DenominacaoTPTS"),
			mapping.Direct("sec_to_main", "DenominacaoTSTP"),
			mapping.Direct("info", "Informacoes"),
		),
		mapping.MustDescriptor(StopRecord,
			mapping.Direct("code", "CodigoParada"),
			mapping.Direct("name", "Nome"),
			mapping.Direct("address", "Endereco"),
			mapping.Direct("latitude", "Latitude"),
			mapping.Direct("longitude", "Longitude"),
		),
		mapping.MustDescriptor(LaneRecord,
			mapping.Direct("code", "CodCorredor"),
			mapping.Direct("cot", "CodCot"),
			mapping.Direct("name", "Nome"),
		),
		mapping.MustDescriptor(VehicleRecord,
			mapping.Direct("plate", "p"),
			mapping.Direct("accessible", "a"),
			mapping.Direct("latitude", "py"),
			mapping.Direct("longitude", "px"),
		),
		mapping.MustDescriptor(PositionsRecord,
			mapping.Transform("time", "hr", mapping.ClockTimeName, clock),
			mapping.List("vehicles", "vs", VehicleRecord),
		),
		mapping.MustDescriptor(VehicleForecastRecord,
			mapping.Direct("plate", "p"),
			mapping.Transform("arriving_at", "t", mapping.ClockTimeName, clock),
			mapping.Direct("accessible", "a"),
			mapping.Direct("latitude", "py"),
			mapping.Direct("longitude", "px"),
		),
		mapping.MustDescriptor(RouteWithVehiclesRecord,
			mapping.Direct("sign", "c"),
			mapping.Direct("code", "cl"),
			mapping.Direct("direction", "sl"),
			mapping.Direct("main_to_sec", "lt0"),
			mapping.Direct("sec_to_main", "lt1"),
			mapping.Direct("quantity", "qv"),
			mapping.List("vehicles", "vs", VehicleForecastRecord),
		),
		mapping.MustDescriptor(StopWithRoutesRecord,
			mapping.Direct("code", "cp"),
			mapping.Direct("name", "np"),
			mapping.Direct("latitude", "py"),
			mapping.Direct("longitude", "px"),
			mapping.List("routes", "l", RouteWithVehiclesRecord),
		),
		mapping.MustDescriptor(StopWithVehiclesRecord,
			mapping.Direct("code", "cp"),
			mapping.Direct("name", "np"),
			mapping.Direct("latitude", "py"),
			mapping.Direct("longitude", "px"),
			mapping.List("vehicles", "vs", VehicleForecastRecord),
		),
		mapping.MustDescriptor(ForecastWithStopRecord,
			mapping.Transform("time", "hr", mapping.ClockTimeName, clock),
			mapping.Object("stop", "p", StopWithRoutesRecord),
		),
		mapping.MustDescriptor(ForecastWithStopsRecord,
			mapping.Transform("time", "hr", mapping.ClockTimeName, clock),
			mapping.List("stops", "ps", StopWithVehiclesRecord),
		),
	)
}
