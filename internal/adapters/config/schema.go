package config

// File is the on-disk shape of faasbench.yaml.
type File struct {
	Deployment map[string]any   `yaml:"deployment"`
	Benchmark  *BenchmarkSchema `yaml:"benchmark"`
}

// BenchmarkSchema holds the function defaults of the benchmark block.
type BenchmarkSchema struct {
	Memory  int `yaml:"memory"`
	Timeout int `yaml:"timeout"`
}
