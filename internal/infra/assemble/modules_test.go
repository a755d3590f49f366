package assemble

import (
	"context"
	"errors"
	"path/filepath"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"

	domain "github.com/poruru-code/jlinkasm/internal/domain/assemble"
	"github.com/poruru-code/jlinkasm/internal/domain/template"
	"github.com/poruru-code/jlinkasm/internal/infra/config"
	"github.com/poruru-code/jlinkasm/internal/infra/process/processtest"
)

func stagedJars(t *testing.T) string {
	t.Helper()
	jars := t.TempDir()
	writeFile(t, filepath.Join(jars, "universal", "a.jar"), "a")
	writeFile(t, filepath.Join(jars, "linux-x86_64", "b.jar"), "b")
	return jars
}

func resolveRequest(jars string, resolution domain.ModuleResolution) ResolveRequest {
	return ResolveRequest{
		Assembler:  "app",
		Platform:   "linux-x86_64",
		BuildJdk:   "/jdks/build",
		JarsDir:    jars,
		Resolution: resolution,
		Jdeps:      config.Jdeps{MultiRelease: "base", IgnoreMissingDeps: true},
		Context: template.Context{
			template.KeyDistributionName: "app",
			template.KeyProjectVersion:   "1.0.0",
		},
	}
}

func TestResolveExplicitModulesSkipsJdeps(t *testing.T) {
	runner := processtest.NewRunner()
	resolver := Resolver{Runner: runner, Host: linuxHost}

	req := resolveRequest(stagedJars(t), domain.ExplicitModules{Names: []string{"java.base", "java.logging"}})
	modules, err := resolver.Resolve(context.Background(), req)
	if err != nil {
		t.Fatalf("resolve: %v", err)
	}
	if diff := cmp.Diff([]string{"java.base", "java.logging"}, modules.Names()); diff != "" {
		t.Fatalf("modules mismatch (-want +got):\n%s", diff)
	}
	if len(runner.Calls) != 0 {
		t.Fatalf("jdeps must not run, got %v", runner.Calls)
	}
}

func TestResolveBuildsJdepsArguments(t *testing.T) {
	flags := []string{"--multi-release", "base", "--ignore-missing-deps", "--print-module-deps"}
	tests := []struct {
		name       string
		resolution domain.ModuleResolution
		want       []string
	}{
		{
			name:       "main module",
			resolution: domain.MainModuleAnalysis{Module: "com.acme"},
			want:       append(append([]string{}, flags...), "--module", "com.acme", "--module-path", "universal/a.jar:linux-x86_64/b.jar"),
		},
		{
			name:       "targets with wildcard",
			resolution: domain.TargetAnalysis{Targets: []string{"universal/{{distributionName}}.jar", " "}, Wildcard: true},
			want:       append(append([]string{}, flags...), "--class-path", "universal/*:linux-x86_64/*", "universal/app.jar"),
		},
		{
			name:       "targets with listing",
			resolution: domain.TargetAnalysis{Targets: []string{"universal/a.jar"}},
			want:       append(append([]string{}, flags...), "--class-path", "universal/a.jar:linux-x86_64/b.jar", "universal/a.jar"),
		},
		{
			name:       "class path lists every jar as class path and as analysis root",
			resolution: domain.ClassPathAnalysis{},
			want: append(append([]string{}, flags...), "--class-path", "universal/a.jar:linux-x86_64/b.jar",
				"universal/a.jar", "linux-x86_64/b.jar"),
		},
	}

	for _, tc := range tests {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			jars := stagedJars(t)
			runner := processtest.NewRunner().On("jdeps", processtest.Response{Stdout: "java.logging,java.base\n"})
			resolver := Resolver{Runner: runner, Host: linuxHost}

			modules, err := resolver.Resolve(context.Background(), resolveRequest(jars, tc.resolution))
			if err != nil {
				t.Fatalf("resolve: %v", err)
			}
			calls := runner.CallsTo("jdeps")
			if len(calls) != 1 {
				t.Fatalf("expected one jdeps call, got %d", len(calls))
			}
			if diff := cmp.Diff(tc.want, calls[0].Args); diff != "" {
				t.Fatalf("args mismatch (-want +got):\n%s", diff)
			}
			if calls[0].Dir != jars {
				t.Fatalf("jdeps dir = %q, want %q", calls[0].Dir, jars)
			}
			if calls[0].Executable != filepath.Join("/jdks/build", "bin", "jdeps") {
				t.Fatalf("executable = %q", calls[0].Executable)
			}
			if diff := cmp.Diff([]string{"java.base", "java.logging"}, modules.Names()); diff != "" {
				t.Fatalf("modules mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestResolveWildcardAndListingAgree(t *testing.T) {
	jars := stagedJars(t)
	var sets [][]string
	for _, wildcard := range []bool{true, false} {
		runner := processtest.NewRunner().On("jdeps", processtest.Response{Stdout: "java.sql, java.base"})
		resolver := Resolver{Runner: runner, Host: linuxHost}
		req := resolveRequest(jars, domain.TargetAnalysis{Targets: []string{"universal/a.jar"}, Wildcard: wildcard})
		modules, err := resolver.Resolve(context.Background(), req)
		if err != nil {
			t.Fatalf("resolve (wildcard=%v): %v", wildcard, err)
		}
		sets = append(sets, modules.Names())
	}
	if diff := cmp.Diff(sets[0], sets[1]); diff != "" {
		t.Fatalf("wildcard and listing disagree (-wildcard +listing):\n%s", diff)
	}
}

func TestResolveMergesAdditionalAndMainModule(t *testing.T) {
	runner := processtest.NewRunner().On("jdeps", processtest.Response{Stdout: "java.base,java.base\r\n"})
	resolver := Resolver{Runner: runner, Host: linuxHost}
	req := resolveRequest(stagedJars(t), domain.MainModuleAnalysis{Module: "com.acme"})
	req.Additional = []string{"jdk.crypto.ec", "java.base"}
	req.MainModule = "com.acme"

	modules, err := resolver.Resolve(context.Background(), req)
	if err != nil {
		t.Fatalf("resolve: %v", err)
	}
	want := []string{"com.acme", "java.base", "jdk.crypto.ec"}
	if diff := cmp.Diff(want, modules.Names()); diff != "" {
		t.Fatalf("modules mismatch (-want +got):\n%s", diff)
	}
}

func TestResolveRejectsMultiLineOutput(t *testing.T) {
	runner := processtest.NewRunner().On("jdeps", processtest.Response{
		Stdout: "Warning: split package com.acme\njava.base,java.logging\n",
	})
	resolver := Resolver{Runner: runner, Host: linuxHost}

	_, err := resolver.Resolve(context.Background(), resolveRequest(stagedJars(t), domain.ClassPathAnalysis{}))
	if !errors.Is(err, domain.ErrDependencyAnalysisFailed) {
		t.Fatalf("expected DependencyAnalysisFailed, got %v", err)
	}
	for _, line := range []string{"Warning: split package com.acme", "java.base,java.logging"} {
		if !strings.Contains(err.Error(), line) {
			t.Fatalf("error %q does not contain %q", err.Error(), line)
		}
	}
}

func TestResolveFailsOnJdepsExitCode(t *testing.T) {
	runner := processtest.NewRunner().On("jdeps", processtest.Response{ExitCode: 2, Stderr: "Error: a.jar is not a jar"})
	resolver := Resolver{Runner: runner, Host: linuxHost}

	_, err := resolver.Resolve(context.Background(), resolveRequest(stagedJars(t), domain.ClassPathAnalysis{}))
	if !errors.Is(err, domain.ErrDependencyAnalysisFailed) {
		t.Fatalf("expected DependencyAnalysisFailed, got %v", err)
	}
	if !strings.Contains(err.Error(), "not a jar") {
		t.Fatalf("expected captured output in %q", err.Error())
	}
}

func TestResolveEmptySetFails(t *testing.T) {
	resolver := Resolver{Runner: processtest.NewRunner(), Host: linuxHost}
	_, err := resolver.Resolve(context.Background(), resolveRequest(stagedJars(t), domain.ExplicitModules{}))
	if !errors.Is(err, domain.ErrNoModulesResolved) {
		t.Fatalf("expected NoModulesResolved, got %v", err)
	}
}

func TestParseModuleDeps(t *testing.T) {
	tests := []struct {
		name    string
		stdout  string
		want    []string
		wantErr bool
	}{
		{name: "lf", stdout: "java.base,java.sql\n", want: []string{"java.base", "java.sql"}},
		{name: "crlf with padding", stdout: "\r\n java.base , java.sql \r\n\r\n", want: []string{"java.base", "java.sql"}},
		{name: "empty", stdout: "\n", wantErr: true},
		{name: "two lines", stdout: "java.base\njava.sql\n", wantErr: true},
		{name: "only commas", stdout: ",,", wantErr: true},
	}
	for _, tc := range tests {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			got, err := parseModuleDeps(tc.stdout)
			if tc.wantErr {
				if err == nil {
					t.Fatalf("expected error, got %v", got)
				}
				return
			}
			if err != nil {
				t.Fatalf("parse: %v", err)
			}
			if diff := cmp.Diff(tc.want, got); diff != "" {
				t.Fatalf("names mismatch (-want +got):\n%s", diff)
			}
		})
	}
}
