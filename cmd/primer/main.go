// Package main provides the Primer ML Framework CLI.
package main

import (
	"fmt"
	"os"
	"runtime"
	"strings"

	"github.com/klauspost/cpuid/v2"
)

const version = "v0.0.1-dev"

func main() {
	if len(os.Args) > 1 {
		switch os.Args[1] {
		case "version":
			printVersion()
			return
		case "examples":
			printExamples()
			return
		}
	}

	fmt.Println("Primer ML Framework - Deep Learning in Go, One Chapter at a Time")
	fmt.Printf("Version: %s\n\n", version)
	fmt.Println("Commands:")
	fmt.Println("  version     Show version, Go runtime, and CPU capabilities")
	fmt.Println("  examples    List the runnable example chapters")
	fmt.Println("")
	fmt.Println("Each chapter runs standalone: go run ./examples/<name>")
}

func printVersion() {
	fmt.Printf("Primer ML Framework %s\n", version)
	fmt.Printf("Go:   %s (%s/%s)\n", runtime.Version(), runtime.GOOS, runtime.GOARCH)
	fmt.Printf("CPU:  %s (%d cores, %d threads)\n",
		cpuid.CPU.BrandName, cpuid.CPU.PhysicalCores, cpuid.CPU.LogicalCores)
	fmt.Printf("SIMD: %s\n", simdFeatures())
}

// simdFeatures lists the vector extensions the tensor kernels can lean on.
func simdFeatures() string {
	var have []string
	for _, f := range []struct {
		id   cpuid.FeatureID
		name string
	}{
		{cpuid.SSE42, "SSE4.2"},
		{cpuid.AVX, "AVX"},
		{cpuid.AVX2, "AVX2"},
		{cpuid.AVX512F, "AVX-512F"},
	} {
		if cpuid.CPU.Supports(f.id) {
			have = append(have, f.name)
		}
	}
	if len(have) == 0 {
		return "none detected"
	}
	return strings.Join(have, ", ")
}

func printExamples() {
	fmt.Println("Examples (go run ./examples/<name>):")
	fmt.Println("  linear-regression   Vectorization timing, Gaussian curves, SGD vs OLS")
	fmt.Println("  naive-bayes         MNIST digits with Laplace smoothing and log-space scoring")
	fmt.Println("  mnist-cnn           LeNet-style CNN trained on the autodiff tape")
	fmt.Println("  parameters          Parameter access, initializer presets, weight tying")
	fmt.Println("  token-frequency     BPE tokenization and Zipf's law")
}
