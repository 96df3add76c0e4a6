package s3

import (
	"context"
	"fmt"
	"strings"

	awss3 "github.com/aws/aws-sdk-go-v2/service/s3"

	"github.com/lattice-kg/lattice/internal/storage"
	"github.com/lattice-kg/lattice/pkg/graph"
	"github.com/lattice-kg/lattice/pkg/loader"
	loaderio "github.com/lattice-kg/lattice/pkg/loader/io"
)

// S3GraphSource loads every JSON graph document under a key prefix from an
// S3 bucket. Useful when graph exports are published to object storage by
// an external pipeline.
type S3GraphSource struct {
	prefix string
	client *awss3.Client
}

// NewS3GraphSource creates a source reading from the given prefix using an
// existing S3 client.
func NewS3GraphSource(prefix string, client *awss3.Client) *S3GraphSource {
	return &S3GraphSource{prefix: prefix, client: client}
}

func (s *S3GraphSource) Load(ctx context.Context) ([]loader.LoadedGraph, error) {
	keys, err := storage.ListFiles(ctx, s.client, s.prefix)
	if err != nil {
		return nil, &graph.LoadError{Reason: fmt.Sprintf("list s3 prefix %s: %v", s.prefix, err)}
	}

	loaded := []loader.LoadedGraph{}
	for _, key := range keys {
		if !strings.HasSuffix(key, ".json") {
			continue
		}

		data, err := storage.GetFile(ctx, s.client, key)
		if err != nil {
			return nil, &graph.LoadError{Reason: fmt.Sprintf("get s3 object %s: %v", key, err)}
		}

		g, err := loader.Build(data)
		if err != nil {
			return nil, err
		}

		loaded = append(loaded, loader.LoadedGraph{Name: loaderio.GraphName(key), Graph: g})
	}

	if len(loaded) == 0 {
		return nil, &graph.LoadError{Reason: fmt.Sprintf("no graph documents under s3 prefix %s", s.prefix)}
	}
	return loaded, nil
}
