package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"log"
	"time"

	"github.com/joho/godotenv"

	lib "github.com/railbook/itinerary-engine"
	"github.com/railbook/itinerary-engine/catalog"
	"github.com/railbook/itinerary-engine/config"
	"github.com/railbook/itinerary-engine/internal"
	"github.com/railbook/itinerary-engine/inventory"
	"github.com/railbook/itinerary-engine/itinerary"
	"github.com/railbook/itinerary-engine/timetable"
)

func main() {
	mode := flag.String("mode", "serve", "serve|search")
	from := flag.Int64("from", 0, "origin station ID (search mode)")
	to := flag.Int64("to", 0, "destination station ID (search mode)")
	date := flag.String("date", "", "trip start date YYYY-MM-DD (search mode)")
	notBefore := flag.String("notBefore", "", "earliest departure HH:MM:SS (search mode)")
	snapshotCache := flag.String("snapshotCache", "", "gob cache path for zip snapshots")
	flag.Parse()

	_ = godotenv.Load()
	internal.InitLogging()
	if err := config.LoadAppConfig(); err != nil {
		panic(err)
	}

	cat, err := openCatalog(config.Config, *snapshotCache)
	if err != nil {
		panic(err)
	}

	arena := inventory.NewHoldArena(time.Duration(config.Config.Inventory.HoldTTLSeconds) * time.Second)
	svc := itinerary.NewService(cat, arena, timetable.Options{
		BackwardJumpThresholdMinutes: config.Config.Timeline.BackwardJumpThresholdMinutes,
	})

	switch *mode {
	case "serve":
		ctx, cancel := context.WithCancel(context.Background())
		defer cancel()
		arena.StartJanitor(ctx, time.Duration(config.Config.Inventory.SweepIntervalSeconds)*time.Second)
		lib.Setup(svc, arena)
		lib.StartServer()
		lib.HandleGracefulShutdown()
	case "search":
		options, err := svc.Search(context.Background(), itinerary.Query{
			FromStationID: *from,
			ToStationID:   *to,
			Date:          *date,
			NotBefore:     *notBefore,
		})
		if err != nil {
			panic(err)
		}
		b, _ := json.MarshalIndent(map[string]any{"itineraries": options}, "", "  ")
		fmt.Println(string(b))
	default:
		panic("unknown mode")
	}
}

func openCatalog(cfg config.AppConfig, cachePath string) (catalog.Catalog, error) {
	switch cfg.Catalog.Source {
	case "zip":
		if cachePath != "" {
			if snap, err := catalog.DeserializeSnapshotFromFile(cachePath); err == nil {
				log.Printf("snapshot loaded from cache %s", cachePath)
				return snap, nil
			}
		}
		snap, err := catalog.LoadSnapshotZip(cfg.Catalog.ZipPath)
		if err != nil {
			return nil, err
		}
		if cachePath != "" {
			if err := catalog.SerializeSnapshotToFile(snap, cachePath); err != nil {
				log.Printf("snapshot cache write failed: %v", err)
			}
		}
		return snap, nil
	default:
		db, err := catalog.Open(cfg.Database.Host, cfg.Database.Port, cfg.Database.Name)
		if err != nil {
			return nil, err
		}
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := db.Ping(ctx); err != nil {
			log.Printf("database not reachable yet: %v", err)
		}
		return db, nil
	}
}
