package main

import (
	"flag"
	"log"
	"os"

	"github.com/df07/go-bounce-raytracer/pkg/config"
	"github.com/df07/go-bounce-raytracer/pkg/renderer"
	"github.com/df07/go-bounce-raytracer/pkg/storage"
	"github.com/df07/go-bounce-raytracer/web/server"
)

func main() {
	cfg, err := config.Load(".env")
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	flag.StringVar(&cfg.ServerAddress, "addr", cfg.ServerAddress, "Address to serve on")
	flag.StringVar(&cfg.ScenesDir, "scenes-dir", cfg.ScenesDir, "Directory of JSON scenes")
	flag.Parse()

	if err := cfg.Validate(); err != nil {
		log.Fatalf("Invalid configuration: %v", err)
	}

	var sink storage.Sink
	if cfg.S3Enabled() {
		sink, err = storage.NewS3Sink(storage.S3Config{
			AccessKey: cfg.S3AccessKey,
			SecretKey: cfg.S3SecretKey,
			Endpoint:  cfg.S3Endpoint,
			Region:    cfg.S3Region,
			Bucket:    cfg.S3Bucket,
			ACL:       "public-read",
		}, renderer.NewDefaultLogger())
		if err != nil {
			log.Fatalf("Failed to configure S3: %v", err)
		}
		log.Printf("Publishing renders to bucket %s", cfg.S3Bucket)
	}

	webServer := server.NewServer(cfg, sink)

	log.Printf("Bounce Raytracer Web Server")
	log.Printf("Visit http://localhost%s to start rendering", cfg.ServerAddress)

	if err := webServer.Start(); err != nil {
		log.Printf("Error starting server: %v", err)
		os.Exit(1)
	}
}
