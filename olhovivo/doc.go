// Package olhovivo is a client for version 0 of the SPTrans "Olho Vivo"
// real-time web service of São Paulo.
//
// A Client authenticates once with an API token and then replays the session
// cookies on every request:
//
//	client, err := olhovivo.NewClient(olhovivo.DefaultConfig())
//	if err != nil {
//		return err
//	}
//	if err := client.Authenticate(ctx, token); err != nil {
//		return err
//	}
//
//	routes, err := client.SearchRoutes(ctx, "8000")
//	if err != nil {
//		return err
//	}
//	for route, err := range routes {
//		if err != nil {
//			return err
//		}
//		fmt.Println(route.Code, route.Sign, route.MainToSec)
//	}
//
// Responses are decoded into records by the mapping package using the
// descriptors returned by NewSchema. Lists are decoded lazily as the returned
// sequence is consumed. Clock times such as "23:09" are placed on the current
// local date.
package olhovivo
