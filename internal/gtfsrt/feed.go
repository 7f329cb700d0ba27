// Package gtfsrt exports Olho Vivo vehicle positions as GTFS-Realtime feeds.
package gtfsrt

import (
	"fmt"
	"strconv"

	gtfsrtpb "github.com/MobilityData/gtfs-realtime-bindings/golang/gtfs"
	"google.golang.org/protobuf/proto"

	"sptrans.olhovivo.dev/olhovivo"
)

const gtfsRealtimeVersion = "2.0"

// VehiclePositionsFeed builds a full-dataset feed with one entity per vehicle
// of routeCode. The route code becomes the trip route_id and the vehicle
// plate both the vehicle id and label.
func VehiclePositionsFeed(routeCode int, p olhovivo.Positions) *gtfsrtpb.FeedMessage {
	timestamp := proto.Uint64(uint64(max(p.Time.Unix(), 0)))
	routeID := strconv.Itoa(routeCode)

	feed := &gtfsrtpb.FeedMessage{
		Header: &gtfsrtpb.FeedHeader{
			GtfsRealtimeVersion: proto.String(gtfsRealtimeVersion),
			Incrementality:      gtfsrtpb.FeedHeader_FULL_DATASET.Enum(),
			Timestamp:           timestamp,
		},
		Entity: make([]*gtfsrtpb.FeedEntity, 0, len(p.Vehicles)),
	}

	for _, v := range p.Vehicles {
		feed.Entity = append(feed.Entity, &gtfsrtpb.FeedEntity{
			Id: proto.String(fmt.Sprintf("%s-%s", routeID, v.Plate)),
			Vehicle: &gtfsrtpb.VehiclePosition{
				Trip: &gtfsrtpb.TripDescriptor{
					RouteId: proto.String(routeID),
				},
				Vehicle: &gtfsrtpb.VehicleDescriptor{
					Id:    proto.String(v.Plate),
					Label: proto.String(v.Plate),
				},
				Position: &gtfsrtpb.Position{
					Latitude:  proto.Float32(float32(v.Latitude)),
					Longitude: proto.Float32(float32(v.Longitude)),
				},
				Timestamp: timestamp,
			},
		})
	}

	return feed
}

// Marshal encodes feed in the protobuf wire format.
func Marshal(feed *gtfsrtpb.FeedMessage) ([]byte, error) {
	b, err := proto.Marshal(feed)
	if err != nil {
		return nil, fmt.Errorf("marshal GTFS-RT feed: %w", err)
	}
	return b, nil
}
