/*
 * Copyright 2025 The RuleGo Authors.
 *
 * Licensed under the Apache License, Version 2.0 (the "License");
 * you may not use this file except in compliance with the License.
 * You may obtain a copy of the License at
 *
 *     http://www.apache.org/licenses/LICENSE-2.0
 *
 * Unless required by applicable law or agreed to in writing, software
 * distributed under the License is distributed on an "AS IS" BASIS,
 * WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
 * See the License for the specific language governing permissions and
 * limitations under the License.
 */

// streamwindow-demo feeds newline-delimited JSON vehicle-position
// records from stdin through an Engine and prints each completed
// window's per-vehicle average speed as JSON, one line per window. It
// is the Go counterpart to the original's helsinki-mqtt smartmodule
// (smartmodule/helsinki-mqtt/src/lib.rs's filter_map entry point),
// which fed the same city-of-Helsinki vehicle telemetry through a
// TumblingWindow<VehiclePosition, VehicleStatistics> one MQTT event at
// a time.
package main

import (
	"bufio"
	"encoding/json"
	"flag"
	"fmt"
	"os"

	streamwindow "github.com/rulego/streamwindow"
	"github.com/rulego/streamwindow/adapter"
	"github.com/rulego/streamwindow/config"
	"github.com/rulego/streamwindow/rolling"
	"github.com/rulego/streamwindow/streamwindowlog"
)

// vehicleStats is the Go counterpart to the original's VehicleStatistics:
// a per-vehicle rolling average speed. The demo's JSON path adapter
// always resolves keys to strings, unlike the original's typed u16
// vehicle IDs, so the key is kept as the raw string here too.
type vehicleStats struct {
	Vehicle string       `json:"vehicle"`
	AvgSpd  rolling.Mean `json:"avg_speed"`
}

func (s *vehicleStats) Add(vehicle string, speed float64) {
	s.Vehicle = vehicle
	_ = s.AvgSpd.Add(speed)
}

func newVehicleStats(vehicle string) *vehicleStats {
	return &vehicleStats{Vehicle: vehicle}
}

func levelFor(name string) streamwindowlog.Level {
	switch name {
	case "DEBUG":
		return streamwindowlog.DEBUG
	case "WARN":
		return streamwindowlog.WARN
	case "ERROR":
		return streamwindowlog.ERROR
	case "OFF":
		return streamwindowlog.OFF
	default:
		return streamwindowlog.INFO
	}
}

func main() {
	configPath := flag.String("config", "", "path to a YAML EngineConfig; defaults to a 10s window over vehicle/speed")
	flag.Parse()

	cfg := config.EngineConfig{WindowSizeSec: 10, KeySelector: "vehicle", ValueSelector: "speed", TimeField: "t"}
	if *configPath != "" {
		loaded, err := config.LoadYAMLFile(*configPath)
		if err != nil {
			fmt.Fprintf(os.Stderr, "streamwindow-demo: %v\n", err)
			os.Exit(1)
		}
		cfg = loaded
	}

	eng, err := streamwindow.New[string, float64, *vehicleStats, string](
		newVehicleStats, cfg, cfg.KeySelector, cfg.ValueSelector,
		streamwindow.WithLogOutput(os.Stderr, levelFor(cfg.LogLevel)),
	)
	if err != nil {
		fmt.Fprintf(os.Stderr, "streamwindow-demo: %v\n", err)
		os.Exit(1)
	}

	scanner := bufio.NewScanner(os.Stdin)
	for scanner.Scan() {
		line := scanner.Bytes()
		if len(line) == 0 {
			continue
		}
		rec, err := adapter.NewJSONRecord(line, adapter.TimeField(cfg.TimeField))
		if err != nil {
			streamwindowlog.Warn("streamwindow-demo: skipping malformed line: %v", err)
			continue
		}
		completed, err := eng.Add(rec)
		if err != nil {
			fmt.Fprintf(os.Stderr, "streamwindow-demo: fatal: %v\n", err)
			os.Exit(1)
		}
		if completed == nil {
			continue
		}
		out, err := json.Marshal(completed)
		if err != nil {
			streamwindowlog.Warn("streamwindow-demo: could not encode completed window: %v", err)
			continue
		}
		fmt.Println(string(out))
	}
	if err := scanner.Err(); err != nil {
		fmt.Fprintf(os.Stderr, "streamwindow-demo: reading stdin: %v\n", err)
		os.Exit(1)
	}

	if out, ok := eng.Flush(); ok {
		b, _ := json.Marshal(out)
		fmt.Println(string(b))
	}
}
