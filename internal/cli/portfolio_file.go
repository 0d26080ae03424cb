package cli

import (
	"encoding/json"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/ndewijer/portfolio-vis/internal/api/request"
	"github.com/ndewijer/portfolio-vis/internal/model"
	"github.com/ndewijer/portfolio-vis/internal/validation"
)

// PortfolioFile is the on-disk description of a portfolio.
type PortfolioFile struct {
	Benchmark string                `json:"benchmark" yaml:"benchmark"`
	Days      int                   `json:"days" yaml:"days"`
	Positions []model.SharePosition `json:"positions" yaml:"positions"`
}

// LoadPortfolioFile reads a portfolio file, trying YAML first and JSON second.
func LoadPortfolioFile(path string) (PortfolioFile, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return PortfolioFile{}, fmt.Errorf("read portfolio file: %w", err)
	}

	var f PortfolioFile
	if err := yaml.Unmarshal(data, &f); err != nil {
		f = PortfolioFile{}
		if err := json.Unmarshal(data, &f); err != nil {
			return PortfolioFile{}, fmt.Errorf("parse portfolio file (tried YAML and JSON): %w", err)
		}
	}
	return f, nil
}

// Request converts the file into the request the HTTP API would receive.
func (f PortfolioFile) Request() request.PortfolioRequest {
	req := request.PortfolioRequest{
		Symbols:   make([]string, len(f.Positions)),
		Shares:    make([]float64, len(f.Positions)),
		Benchmark: f.Benchmark,
	}
	for i, p := range f.Positions {
		req.Symbols[i] = string(p.Symbol)
		req.Shares[i] = p.Shares
	}
	if f.Days != 0 {
		days := f.Days
		req.Days = &days
	}
	return req
}

// Query validates the file and returns its portfolio query.
func (f PortfolioFile) Query() (model.PortfolioQuery, error) {
	req := f.Request()
	if err := validation.ValidatePortfolio(req); err != nil {
		return model.PortfolioQuery{}, err
	}
	return req.Query(), nil
}

func loadQuery(path string) (model.PortfolioQuery, error) {
	f, err := LoadPortfolioFile(path)
	if err != nil {
		return model.PortfolioQuery{}, err
	}
	q, err := f.Query()
	if err != nil {
		return model.PortfolioQuery{}, fmt.Errorf("%s: %w", path, err)
	}
	return q, nil
}
