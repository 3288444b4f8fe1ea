package main

import (
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/robalobadob/lettergrid/assets"
	"github.com/robalobadob/lettergrid/internal/config"
	"github.com/robalobadob/lettergrid/internal/db"
	"github.com/robalobadob/lettergrid/internal/describe"
	"github.com/robalobadob/lettergrid/internal/httpserver"
	"github.com/robalobadob/lettergrid/internal/pool"
	"github.com/robalobadob/lettergrid/internal/round"
	"github.com/robalobadob/lettergrid/internal/store"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatal().Err(err).Msg("invalid configuration")
	}
	if lvl, err := zerolog.ParseLevel(cfg.Server.LogLevel); err == nil {
		zerolog.SetGlobalLevel(lvl)
	}

	items, err := pool.Load(cfg.Paths.Images)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to load image pool")
	}
	if items.Len() < cfg.Grid.Count {
		log.Warn().Int("items", items.Len()).Int("grid", cfg.Grid.Count).
			Msg("pool smaller than the grid; add more images")
	}
	log.Info().Str("source", items.Source()).Int("items", items.Len()).
		Strs("letters", items.Letters()).Msg("image pool loaded")

	if cfg.Debug.Seed != nil {
		log.Info().Int64("seed", *cfg.Debug.Seed).Bool("perRound", cfg.Debug.SeedPerRound).Msg("deterministic rounds")
	} else if cfg.Debug.LogSeed {
		if seed, err := round.NewSeed(); err == nil {
			log.Info().Int64("seed", seed).Msg("startup seed (set DEBUG_RANDOM_SEED to replay)")
		}
	}

	conn, err := db.Open(cfg.Paths.Database)
	if err != nil {
		log.Fatal().Err(err).Str("path", cfg.Paths.Database).Msg("open database")
	}
	defer conn.Close()
	migrations, err := assets.Migrations()
	if err != nil {
		log.Fatal().Err(err).Msg("load migrations")
	}
	if err := db.Migrate(conn, migrations); err != nil {
		log.Fatal().Err(err).Msg("migrate database")
	}

	srv := httpserver.New(store.NewMemoryStore(), conn, httpserver.Options{
		Config:       cfg,
		Pool:         items,
		Descriptions: describe.NewCache(cfg.Paths.Descriptions),
	})
	log.Info().Str("port", cfg.Server.Port).Msg("starting lettergrid")
	if err := srv.Start(":" + cfg.Server.Port); err != nil {
		log.Fatal().Err(err).Msg("server exited")
	}
}
