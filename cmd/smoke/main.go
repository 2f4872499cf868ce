package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"time"

	"hearth.homes/internal/auth"
	"hearth.homes/internal/registry/remote"
)

// Smoke-tests a running registry instance: share a home, read it back as the
// buyer, then check market trends.
func main() {
	var (
		base    = flag.String("base", "http://localhost:8080", "registry base URL")
		homeID  = flag.String("home", "home-100", "home to share")
		buyerID = flag.String("buyer", "buyer-1", "buyer to share with")
		seller  = flag.String("seller", "seller-1", "owner identity")
		geo     = flag.String("geo", "board:REBGV", "geography for the trend check")
	)
	flag.Parse()

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()
	client := remote.New(*base)

	sellerCtx := auth.ContextWithIdentity(ctx, auth.Identity{UserID: *seller, Role: auth.RoleSeller})
	grant, err := client.UpsertShare(sellerCtx, *homeID, remote.ShareRequest{
		BuyerID: *buyerID,
		Scope:   map[string]any{"photos": true, "profile": true},
	})
	if err != nil {
		fail("share home: %v", err)
	}
	fmt.Printf("shared %s with %s (grant %s, scope %v)\n", grant.HomeID, grant.BuyerID, grant.ID, grant.Scope.Keys())

	buyerCtx := auth.ContextWithIdentity(ctx, auth.Identity{UserID: *buyerID, Role: auth.RoleBuyer})
	view, err := client.SharedHome(buyerCtx, *homeID)
	if err != nil {
		fail("fetch shared home: %v", err)
	}
	fmt.Printf("buyer sees %s: %d photos, summary present: %v\n", view.ID, len(view.Photos), view.Summary != "")

	report, err := client.MarketTrends(ctx, *geo, "composite")
	if err != nil {
		fail("market trends: %v", err)
	}
	fmt.Printf("%s %s benchmark: %.0f %s (%s)\n", report.GeoName, report.PropertyType, report.Value, report.Currency, report.Provider)

	if err := client.RevokeShare(sellerCtx, *homeID, grant.ID); err != nil {
		fail("revoke share: %v", err)
	}
	fmt.Println("smoke ok")
}

func fail(format string, args ...any) {
	fmt.Fprintf(os.Stderr, "smoke: "+format+"\n", args...)
	os.Exit(1)
}
