package mojang_test

import (
	"context"
	"errors"
	"fmt"
	"log"

	"github.com/google/uuid"

	mojang "github.com/steviee/go-mojang"
)

// ExampleClient_GetUUID demonstrates looking up a player's UUID.
func ExampleClient_GetUUID() {
	client, err := mojang.NewClient(nil) // nil uses default config
	if err != nil {
		log.Fatal(err)
	}
	defer client.Close()

	ctx := context.Background()
	id, err := client.GetUUID(ctx, "Notch")
	if err != nil {
		log.Fatal(err)
	}
	if id == uuid.Nil {
		fmt.Println("no such player")
		return
	}

	fmt.Printf("UUID: %s\n", id)
}

// ExampleClient_GetUUIDs demonstrates batch name resolution.
func ExampleClient_GetUUIDs() {
	client, err := mojang.NewClient(nil)
	if err != nil {
		log.Fatal(err)
	}
	defer client.Close()

	ctx := context.Background()
	ids, err := client.GetUUIDs(ctx, []string{"Notch", "jeb_", "Dinnerbone"})
	if err != nil {
		log.Fatal(err)
	}

	// Names that do not exist are simply absent from the map
	for name, id := range ids {
		fmt.Printf("%s -> %s\n", name, id)
	}
}

// ExampleClient_GetProfile demonstrates fetching a full profile with
// decoded texture data.
func ExampleClient_GetProfile() {
	client, err := mojang.NewClient(nil)
	if err != nil {
		log.Fatal(err)
	}
	defer client.Close()

	ctx := context.Background()
	id, err := client.GetUUID(ctx, "Notch")
	if err != nil {
		log.Fatal(err)
	}

	profile, err := client.GetProfile(ctx, id)
	if err != nil {
		log.Fatal(err)
	}
	if profile == nil {
		fmt.Println("no profile")
		return
	}

	fmt.Printf("Name: %s\n", profile.Name)
	fmt.Printf("Skin variant: %s\n", profile.SkinVariant)
	fmt.Printf("Skin URL: %s\n", profile.SkinURL)
}

// Example_customConfig demonstrates creating a client with retry on
// rate limits enabled.
func Example_customConfig() {
	config := &mojang.Config{
		MaxAttempts:      5,
		RetryOnRatelimit: true,
		UserAgent:        "my-tool/1.0.0",
	}

	client, err := mojang.NewClient(config)
	if err != nil {
		log.Fatal(err)
	}
	defer client.Close()

	ctx := context.Background()
	hashes, err := client.GetBlockedServers(ctx)
	if err != nil {
		log.Fatal(err)
	}

	fmt.Printf("%d blocked servers\n", len(hashes))
}

// Example_errorHandling demonstrates matching classified errors.
func Example_errorHandling() {
	client, err := mojang.NewClient(nil)
	if err != nil {
		log.Fatal(err)
	}
	defer client.Close()

	ctx := context.Background()
	_, err = client.GetUUID(ctx, "Notch")

	switch {
	case err == nil:
		fmt.Println("ok")
	case errors.Is(err, mojang.ErrTooManyRequests):
		fmt.Println("rate limited, try again later")
	case errors.Is(err, mojang.ErrServerError):
		fmt.Println("Mojang is having trouble")
	default:
		log.Fatal(err)
	}
}
