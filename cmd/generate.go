// Copyright 2025 Google LLC
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package cmd

import (
	"context"
	"fmt"
	"io"

	"github.com/blssim/blssim/cfg"
	"github.com/blssim/blssim/internal/generator"
	"github.com/blssim/blssim/internal/util"
	"github.com/jacobsa/timeutil"
	"github.com/spf13/cobra"
)

func newGenerateCmd(a *app) (*cobra.Command, error) {
	c := &cobra.Command{
		Use:   "generate",
		Short: "Generate fake records (simulation).",
		Args:  cobra.NoArgs,
		RunE:  a.runE(a.generate),
	}
	if err := cfg.BindGenerateFlags(a.v, c.Flags()); err != nil {
		return nil, fmt.Errorf("error while binding generate flags: %w", err)
	}
	return c, nil
}

func (a *app) generate(_ context.Context, out io.Writer) error {
	path := string(a.config.Files.RecordsFile)
	g := generator.NewGenerator(a.rand, timeutil.RealClock(), a.config.Generate.ExpiryYears, path)

	recs, err := g.Generate(a.config.Generate.Count, a.config.Generate.StartYear)
	if err != nil {
		return err
	}

	fmt.Fprintln(out, util.Success(fmt.Sprintf("Generated %d records and saved to %s", len(recs), path)))
	return nil
}
