// Copyright (c) 2026 Petar Djukic. All rights reserved.
// SPDX-License-Identifier: MIT

//go:build mage

package main

import (
	"bytes"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"
)

// statsRoots are the source trees Stats reports on.
var statsRoots = []string{"pkg", "internal", "cmd"}

// Stats prints Go lines of code per package, split into source and tests.
func Stats() error {
	type counts struct{ src, test int }
	perPkg := map[string]*counts{}

	for _, root := range statsRoots {
		err := filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
			if err != nil || d.IsDir() || !strings.HasSuffix(path, ".go") {
				return err
			}
			data, err := os.ReadFile(path)
			if err != nil {
				return err
			}
			n := bytes.Count(data, []byte{'\n'})
			c := perPkg[filepath.Dir(path)]
			if c == nil {
				c = &counts{}
				perPkg[filepath.Dir(path)] = c
			}
			if strings.HasSuffix(path, "_test.go") {
				c.test += n
			} else {
				c.src += n
			}
			return nil
		})
		if err != nil && !os.IsNotExist(err) {
			return err
		}
	}

	pkgs := make([]string, 0, len(perPkg))
	for pkg := range perPkg {
		pkgs = append(pkgs, pkg)
	}
	sort.Strings(pkgs)

	var total counts
	fmt.Printf("%-24s %8s %8s\n", "package", "source", "tests")
	for _, pkg := range pkgs {
		c := perPkg[pkg]
		fmt.Printf("%-24s %8d %8d\n", pkg, c.src, c.test)
		total.src += c.src
		total.test += c.test
	}
	fmt.Printf("%-24s %8d %8d\n", "total", total.src, total.test)
	return nil
}
