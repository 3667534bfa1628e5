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

package metrics

import (
	"context"
	"fmt"
	"slices"

	"github.com/blssim/blssim/internal/logger"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	sdkmetric "go.opentelemetry.io/otel/sdk/metric"
	"go.opentelemetry.io/otel/sdk/metric/metricdata"
	"go.opentelemetry.io/otel/sdk/resource"
)

// Summary installs an in-process meter provider backed by a manual reader so
// that a command can report its metrics when it finishes.
type Summary struct {
	reader   *sdkmetric.ManualReader
	provider *sdkmetric.MeterProvider
}

// NewSummary sets the global meter provider. It must be called before
// NewOTelMetrics.
func NewSummary() *Summary {
	reader := sdkmetric.NewManualReader()
	res := resource.NewSchemaless(attribute.String("service.name", meterName))
	provider := sdkmetric.NewMeterProvider(sdkmetric.WithReader(reader), sdkmetric.WithResource(res))
	otel.SetMeterProvider(provider)
	return &Summary{reader: reader, provider: provider}
}

// Lines collects the current values, one sorted line per data point:
//
//	hits_count{source=check} = 4
//	evaluation_latency count=10 sum=2210ms
func (s *Summary) Lines(ctx context.Context) ([]string, error) {
	var rm metricdata.ResourceMetrics
	if err := s.reader.Collect(ctx, &rm); err != nil {
		return nil, fmt.Errorf("collecting metrics: %w", err)
	}

	var lines []string
	for _, sm := range rm.ScopeMetrics {
		for _, m := range sm.Metrics {
			switch data := m.Data.(type) {
			case metricdata.Sum[int64]:
				for _, dp := range data.DataPoints {
					lines = append(lines, fmt.Sprintf("%s = %d", seriesName(m.Name, dp.Attributes), dp.Value))
				}
			case metricdata.Histogram[int64]:
				for _, dp := range data.DataPoints {
					lines = append(lines, fmt.Sprintf("%s count=%d sum=%d%s", seriesName(m.Name, dp.Attributes), dp.Count, dp.Sum, m.Unit))
				}
			}
		}
	}
	slices.Sort(lines)
	return lines, nil
}

// Log writes the summary lines at INFO.
func (s *Summary) Log(ctx context.Context) error {
	lines, err := s.Lines(ctx)
	if err != nil {
		return err
	}
	for _, l := range lines {
		logger.Infof("Metric %s", l)
	}
	return nil
}

func (s *Summary) Shutdown(ctx context.Context) error {
	return s.provider.Shutdown(ctx)
}

func seriesName(name string, attrs attribute.Set) string {
	if attrs.Len() == 0 {
		return name
	}
	return fmt.Sprintf("%s{%s}", name, attrs.Encoded(attribute.DefaultEncoder()))
}
