// Package provdir embeds the provider directory search engine in a Go
// program, backed by Redis or Valkey with the search module.
//
// Results blend two sources: verified locations (ranked featured, then paid
// plan, then distance) come first, followed by unverified directory places.
//
//	client, _ := provdir.New(ctx, provdir.WithRedis("localhost:6379", ""))
//	defer client.Close()
//
//	_, _ = client.Migrate(ctx)
//	_, _ = client.LoadFile(ctx, "seed.yaml")
//
//	lat, lng := 40.73, -74.17
//	page, _ := client.Search(ctx, provdir.SearchParams{
//	    State:   "new-jersey",
//	    UserLat: &lat,
//	    UserLng: &lng,
//	    Limit:   20,
//	})
//	for _, r := range page.Results {
//	    switch v := r.(type) {
//	    case provdir.LocationResult:
//	        fmt.Println(v.Listing.AgencyName, v.DistanceMiles.OrElse(0))
//	    case provdir.PlaceResult:
//	        fmt.Println(v.Place.Name)
//	    }
//	}
package provdir
