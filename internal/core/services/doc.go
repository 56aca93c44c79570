// Package services implements the driving port interfaces.
// Services hold the pipeline logic and orchestrate calls to driven
// ports: chunking, feature extraction, keyphrase scoring and clustering.
//
// Services are pure Go with no CGO. Per-section work is spread with errgroup.
package services
