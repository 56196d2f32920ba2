/*
   Copyright 2025 The DIRPX Authors.

   Licensed under the Apache License, Version 2.0 (the "License");
   you may not use this file except in compliance with the License.
   You may obtain a copy of the License at

       http://www.apache.org/licenses/LICENSE-2.0

   Unless required by applicable law or agreed to in writing, software
   distributed under the License is distributed on an "AS IS" BASIS,
   WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
   See the License for the specific language governing permissions and
   limitations under the License.
*/

// ocxdemo walks through the ocx construction patterns from the command
// line: one subcommand per pattern, each exercising only the public API.
package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/google/uuid"
	"github.com/urfave/cli/v3"
	"go.uber.org/zap"

	"dirpx.dev/ocx"
	"dirpx.dev/ocx/builder"
	"dirpx.dev/ocx/config"
	"dirpx.dev/ocx/director"
	"dirpx.dev/ocx/prototype"
	"dirpx.dev/ocx/registry"
	"dirpx.dev/ocx/singleton"
)

func main() {
	logger, err := zap.NewDevelopment()
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
	defer func() { _ = logger.Sync() }()

	cmd := &cli.Command{
		Name:  "ocxdemo",
		Usage: "Demonstrate the ocx object construction patterns",
		Commands: []*cli.Command{
			singletonCmd(logger),
			registryCmd(logger),
			builderCmd(logger),
			directorCmd(logger),
			factoryCmd(logger),
			prototypeCmd(logger),
		},
	}
	if err := cmd.Run(context.Background(), os.Args); err != nil {
		logger.Fatal("demo failed", zap.Error(err))
	}
}

// session is the demo service: its identity data is captured on first access.
type session struct {
	ID        string
	CreatedAt time.Time
}

func newSession() *session {
	return &session{ID: uuid.NewString(), CreatedAt: time.Now().UTC()}
}

func singletonCmd(logger *zap.Logger) *cli.Command {
	return &cli.Command{
		Name:  "singleton",
		Usage: "Guarded and lazy single-instance lifecycles",
		Action: func(_ context.Context, _ *cli.Command) error {
			guarded := singleton.NewGuarded(func() (*session, error) {
				return newSession(), nil
			})

			first, err := guarded.Instance()
			if err != nil {
				return err
			}
			second, err := guarded.Instance()
			if err != nil {
				return err
			}
			logger.Info("guarded access is idempotent",
				zap.String("first", first.ID),
				zap.String("second", second.ID),
				zap.Bool("identical", first == second))

			if _, err := guarded.NewInstance(); errors.Is(err, singleton.ErrConstructionForbidden) {
				logger.Info("direct construction rejected", zap.Error(err))
			}

			guarded.Reset()
			third, err := guarded.Instance()
			if err != nil {
				return err
			}
			logger.Info("reset yields a distinct instance",
				zap.String("third", third.ID),
				zap.Bool("identical", first == third))

			lazy := singleton.NewLazy(newSession)
			logger.Info("lazy slot before access", zap.Bool("initialized", lazy.Initialized()))
			s := lazy.Instance()
			logger.Info("lazy slot after access",
				zap.String("id", s.ID),
				zap.Time("created_at", s.CreatedAt),
				zap.Bool("initialized", lazy.Initialized()))
			return nil
		},
	}
}

func registryCmd(logger *zap.Logger) *cli.Command {
	return &cli.Command{
		Name:  "registry",
		Usage: "Keyed process-wide instances with per-key reset",
		Action: func(_ context.Context, _ *cli.Command) error {
			defer ocx.ResetInstances()

			open := func() (any, error) { return newSession(), nil }
			for _, key := range []string{"database", "cache", "database"} {
				v, err := ocx.Instance(key, open)
				if err != nil {
					return err
				}
				logger.Info("instance", zap.String("key", key), zap.String("id", v.(*session).ID))
			}

			for _, e := range ocx.Registry().Entries() {
				logger.Info("registry entry",
					zap.String("key", e.Key),
					zap.String("generation", e.Generation),
					zap.Time("created_at", e.CreatedAt))
			}

			ocx.ResetInstance("database")
			logger.Info("after reset", zap.Bool("has_database", ocx.HasInstance("database")))

			db, err := registry.InstanceOf(ocx.Registry(), "database", newSessionFactory())
			if err != nil {
				return err
			}
			logger.Info("reconstructed", zap.String("id", db.ID))
			return nil
		},
	}
}

func newSessionFactory() func() (*session, error) {
	return func() (*session, error) { return newSession(), nil }
}

func builderCmd(logger *zap.Logger) *cli.Command {
	return &cli.Command{
		Name:  "builder",
		Usage: "Staged construction with required-field validation",
		Flags: []cli.Flag{
			&cli.StringFlag{Name: "processor", Usage: "Processor model (required)"},
			&cli.StringFlag{Name: "memory", Usage: "Memory configuration (required)"},
			&cli.StringFlag{Name: "storage", Usage: "Storage configuration (required)"},
			&cli.StringFlag{Name: "gpu", Usage: "Graphics card (optional)"},
		},
		Action: func(_ context.Context, cmd *cli.Command) error {
			b := builder.New(config.DefaultConfig()).
				SetProcessor(cmd.String("processor")).
				SetMemory(cmd.String("memory")).
				SetStorage(cmd.String("storage"))
			if gpu := cmd.String("gpu"); gpu != "" {
				b.SetGraphicsCard(gpu)
			}

			product, err := b.Build()
			var missing *builder.MissingFieldError
			if errors.As(err, &missing) {
				logger.Warn("validation failed", zap.String("missing_field", missing.Field))
				return err
			}
			if err != nil {
				return err
			}
			logger.Info("built", zap.Any("computer", product))
			return nil
		},
	}
}

func directorCmd(logger *zap.Logger) *cli.Command {
	return &cli.Command{
		Name:  "director",
		Usage: "Canonical recipes driving the staged builder",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:  "recipe",
				Value: director.RecipeGaming,
				Usage: "Recipe name to assemble",
			},
		},
		Action: func(_ context.Context, cmd *cli.Command) error {
			names, err := director.Names()
			if err != nil {
				return err
			}
			logger.Info("catalog", zap.Strings("recipes", names))

			d := director.New(nil)
			product, err := d.Build(cmd.String("recipe"))
			if err != nil {
				return err
			}
			logger.Info("assembled", zap.String("recipe", cmd.String("recipe")), zap.Any("computer", product))
			return nil
		},
	}
}

func factoryCmd(logger *zap.Logger) *cli.Command {
	return &cli.Command{
		Name:  "factory",
		Usage: "Factory-method dispatch by kind",
		Flags: []cli.Flag{
			&cli.StringFlag{Name: "kind", Value: "document.pdf", Usage: "Kind to create"},
		},
		Action: func(_ context.Context, cmd *cli.Command) error {
			defer ocx.Catalog().Reset()

			for _, kind := range []string{"document.pdf", "document.word"} {
				k := kind
				if err := ocx.RegisterKind(k, func() (any, error) {
					return fmt.Sprintf("%s produced at %s", k, time.Now().UTC().Format(time.RFC3339)), nil
				}); err != nil {
					return err
				}
			}

			v, err := ocx.Create(cmd.String("kind"))
			if err != nil {
				return err
			}
			logger.Info("created", zap.String("kind", cmd.String("kind")), zap.Any("product", v))
			return nil
		},
	}
}

// glyph is the prototype demo exemplar.
type glyph struct {
	Name   string
	Points []int
}

func (g *glyph) Clone() any {
	points := make([]int, len(g.Points))
	copy(points, g.Points)
	return &glyph{Name: g.Name, Points: points}
}

func prototypeCmd(logger *zap.Logger) *cli.Command {
	return &cli.Command{
		Name:  "prototype",
		Usage: "Exemplar registration and deep cloning",
		Action: func(_ context.Context, _ *cli.Command) error {
			reg := prototype.New(config.DefaultConfig())
			exemplar := &glyph{Name: "triangle", Points: []int{1, 2, 3}}
			if err := reg.Register(exemplar); err != nil {
				return err
			}

			v, err := reg.CloneOf(&glyph{})
			if err != nil {
				return err
			}
			clone := v.(*glyph)
			clone.Points[0] = 99
			logger.Info("cloned",
				zap.Ints("exemplar_points", exemplar.Points),
				zap.Ints("clone_points", clone.Points),
				zap.Bool("independent", exemplar.Points[0] != clone.Points[0]))
			return nil
		},
	}
}
