// Package mojang provides a Go client for the public Mojang API:
// username to UUID lookups, profile and texture retrieval, and the
// blocked server list.
//
// Requests that fail transiently are retried under a bounded policy:
// 502, 503 and 504 responses back off exponentially, and 429 responses
// can optionally be retried after a fixed delay. All other failures are
// classified into sentinel error kinds that callers match with
// errors.Is.
//
// Basic usage:
//
//	client, err := mojang.NewClient(nil)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	defer client.Close()
//
//	// Look up a player's UUID
//	id, err := client.GetUUID(ctx, "Notch")
//	if err != nil {
//	    log.Fatal(err)
//	}
//	if id == uuid.Nil {
//	    fmt.Println("no such player")
//	    return
//	}
//
//	// Fetch the full profile, including skin and cape URLs
//	profile, err := client.GetProfile(ctx, id)
//	if err != nil {
//	    log.Fatal(err)
//	}
//
//	fmt.Println("Skin:", profile.SkinURL)
package mojang
