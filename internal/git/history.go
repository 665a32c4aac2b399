package git

import (
	"errors"
	"fmt"

	gitlib "github.com/go-git/go-git/v5"
	"github.com/go-git/go-git/v5/plumbing"

	"github.com/thiagokokada/gitlanes/internal/graph"
)

// history exposes a go-git repository as a graph.History.
type history struct {
	repo *gitlib.Repository
}

func (h history) Head() (string, bool, error) {
	ref, err := h.repo.Head()
	if errors.Is(err, plumbing.ErrReferenceNotFound) {
		return "", false, nil
	}
	if err != nil {
		return "", false, err
	}
	return ref.Hash().String(), true, nil
}

func (h history) Branches() ([]graph.Branch, error) {
	refs, err := h.repo.Branches()
	if err != nil {
		return nil, err
	}
	defer refs.Close()
	var branches []graph.Branch
	err = refs.ForEach(func(ref *plumbing.Reference) error {
		if ref.Type() != plumbing.HashReference {
			return nil
		}
		branches = append(branches, graph.Branch{Name: ref.Name().Short(), Tip: ref.Hash().String()})
		return nil
	})
	return branches, err
}

func (h history) Commit(id string) (*graph.Commit, error) {
	c, err := h.repo.CommitObject(plumbing.NewHash(id))
	if errors.Is(err, plumbing.ErrObjectNotFound) {
		return nil, fmt.Errorf("%s: %w", id, graph.ErrCommitNotFound)
	}
	if err != nil {
		return nil, err
	}
	parents := make([]string, len(c.ParentHashes))
	for i, p := range c.ParentHashes {
		parents[i] = p.String()
	}
	return &graph.Commit{
		ID:        c.Hash.String(),
		ParentIDs: parents,
		Author:    c.Author.Name,
		Message:   c.Message,
		When:      c.Committer.When,
	}, nil
}

// CommitGraph returns one page of the commit graph. A zero limit selects the
// configured default and the result never holds more than graph.MaxLimit nodes.
func (s *Service) CommitGraph(limit, offset uint) (graph.Graph, error) {
	var g graph.Graph
	err := s.run("commit_graph", func(h *repoHandle) error {
		var err error
		g, err = graph.Build(history{repo: h.Repository}, graph.Options{
			Limit:        limit,
			Offset:       offset,
			DefaultLimit: s.opts.DefaultLimit,
			MaxLimit:     s.opts.MaxLimit,
		})
		return err
	})
	if err != nil {
		return graph.Graph{}, err
	}
	return g, nil
}
