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

package cfg

import (
	"fmt"

	"gopkg.in/yaml.v3"
)

// DumpAsYAML renders the config the way it would be written in a config file.
func DumpAsYAML(c *Config) (string, error) {
	yamlData, err := yaml.Marshal(c)
	if err != nil {
		return "", fmt.Errorf("error marshalling config to yaml: %w", err)
	}
	return string(yamlData), nil
}
