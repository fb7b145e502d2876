package metric

import (
	"github.com/prometheus/client_golang/prometheus"
)

// Sizer reports a current size, e.g. the token registry or account store.
type Sizer interface {
	Len() int
}

// SizerFunc adapts a function to Sizer.
type SizerFunc func() int

// Len implements Sizer.
func (f SizerFunc) Len() int { return f() }

// Collector reads the stored token and linked account counts at scrape time.
type Collector struct {
	tokens   Sizer
	accounts Sizer

	tokensDesc   *prometheus.Desc
	accountsDesc *prometheus.Desc
}

// NewCollector creates a collector over the given sizes. Either may be nil.
func NewCollector(tokens, accounts Sizer) *Collector {
	return &Collector{
		tokens:   tokens,
		accounts: accounts,
		tokensDesc: prometheus.NewDesc(
			prometheus.BuildFQName(namespace, "link_tokens", "stored"),
			"Number of link tokens currently stored, including expired ones not yet swept",
			nil, nil,
		),
		accountsDesc: prometheus.NewDesc(
			prometheus.BuildFQName(namespace, "accounts", "linked"),
			"Number of currently linked accounts",
			nil, nil,
		),
	}
}

// Describe implements prometheus.Collector.
func (c *Collector) Describe(ch chan<- *prometheus.Desc) {
	if c.tokens != nil {
		ch <- c.tokensDesc
	}
	if c.accounts != nil {
		ch <- c.accountsDesc
	}
}

// Collect implements prometheus.Collector.
func (c *Collector) Collect(ch chan<- prometheus.Metric) {
	if c.tokens != nil {
		ch <- prometheus.MustNewConstMetric(c.tokensDesc, prometheus.GaugeValue, float64(c.tokens.Len()))
	}
	if c.accounts != nil {
		ch <- prometheus.MustNewConstMetric(c.accountsDesc, prometheus.GaugeValue, float64(c.accounts.Len()))
	}
}
