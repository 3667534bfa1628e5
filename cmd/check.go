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
	"github.com/blssim/blssim/internal/evaluator"
	"github.com/blssim/blssim/internal/hits"
	"github.com/blssim/blssim/internal/logger"
	"github.com/blssim/blssim/internal/util"
	"github.com/blssim/blssim/internal/workerpool"
	"github.com/spf13/cobra"
)

func newCheckCmd(a *app) (*cobra.Command, error) {
	c := &cobra.Command{
		Use:     "simulate-check",
		Aliases: []string{"check"},
		Short:   "Simulate checking generated records with concurrent workers.",
		Args:    cobra.NoArgs,
		RunE:    a.runE(a.check),
	}
	if err := cfg.BindCheckFlags(a.v, c.Flags()); err != nil {
		return nil, fmt.Errorf("error while binding check flags: %w", err)
	}
	return c, nil
}

func (a *app) check(ctx context.Context, out io.Writer) error {
	checkCfg := a.config.Check
	path := a.inputPath(checkCfg.InputFile)
	recs, err := loadRecords(path)
	if err != nil {
		return err
	}
	fmt.Fprintln(out, util.Info(fmt.Sprintf("Loaded %d records from %s", len(recs), path)))

	progress := util.NewProgress(out, a.clock)
	if err = progress.Run(ctx, "Preparing multi-thread check", checkCfg.PrepareDelay); err != nil {
		return err
	}

	e := evaluator.NewEvaluator(evaluator.Params{
		ScoreThreshold:   checkCfg.ScoreThreshold,
		HighValueBalance: checkCfg.HighValueBalance,
		BaseDelay:        checkCfg.BaseDelay,
	}, a.clock)
	found, runErr := workerpool.NewCoordinator(e, a.metricHandle, a.clock).Run(ctx, recs, checkCfg.Workers)

	// Hits gathered before a cancellation are still real hits.
	store := hits.NewStore(string(a.config.Files.HitsFile))
	if err = store.Append(found...); err != nil {
		return err
	}
	if runErr != nil {
		logger.Warnf("Check interrupted after %d hits: %v", len(found), runErr)
		return runErr
	}

	logger.Infof("Multi-thread check complete: %d valid found", len(found))
	fmt.Fprintln(out, util.Success(fmt.Sprintf("Simulation complete. %d valid(s) found. See %s", len(found), store.Path())))
	return nil
}
