// Copyright 2025 Poiesic Systems
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

package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"strings"

	"github.com/poiesic/orgdir"
)

func init() {
	handler := slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{
		Level: slog.LevelInfo,
	})
	slog.SetDefault(slog.New(handler))
}

func main() {
	dir, err := orgdir.NewDirectory("./orgdir_db")
	if err != nil {
		panic(err)
	}
	defer dir.Close()
	gateway, err := dir.NewGateway()
	if err != nil {
		panic(err)
	}

	query := "bank"
	if len(os.Args) > 1 {
		query = strings.Join(os.Args[1:], " ")
	}

	lookup := gateway.Lookup(context.Background(), query)

	fmt.Printf("Found %d companies (%s)\n", len(lookup.Results), lookup.Source)
	for i, r := range lookup.Results {
		fmt.Printf("%d: '%s' [%s] %s\n", i, r.Name, r.Industry, r.EmployeeSize)
	}
}
