package junctiontree_test

import (
	"testing"

	"github.com/sirupsen/logrus"

	"github.com/katalvlaran/bayes/bayesnet"
	"github.com/katalvlaran/bayes/internal/testnets"
	"github.com/katalvlaran/bayes/junctiontree"
)

// BenchmarkPropagate measures one full propagation on a random 60-node
// network, alternating the evidence so the cache never hits.
func BenchmarkPropagate(b *testing.B) {
	net, err := testnets.Random(7, 60, 3, 3)
	if err != nil {
		b.Fatal(err)
	}
	quiet := logrus.New()
	quiet.SetLevel(logrus.WarnLevel)

	for _, tc := range []struct {
		name string
		opts []junctiontree.Option
	}{
		{"sequential", nil},
		{"concurrent", []junctiontree.Option{junctiontree.WithConcurrency(4)}},
	} {
		b.Run(tc.name, func(b *testing.B) {
			inf := junctiontree.New(append(tc.opts, junctiontree.WithLogger(quiet))...)
			if err := inf.SetNetwork(net); err != nil {
				b.Fatal(err)
			}
			nodes := net.Nodes()
			b.ResetTimer()
			for i := 0; i < b.N; i++ {
				_ = inf.SetEvidence(map[*bayesnet.Node]int{nodes[0]: i % 2})
				if _, err := inf.Beliefs(nodes[len(nodes)-1]); err != nil {
					b.Fatal(err)
				}
			}
		})
	}
}

// BenchmarkCompile measures compilation alone.
func BenchmarkCompile(b *testing.B) {
	net, err := testnets.Random(7, 60, 3, 3)
	if err != nil {
		b.Fatal(err)
	}
	inf := junctiontree.New()
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		if err := inf.SetNetwork(net); err != nil {
			b.Fatal(err)
		}
	}
}
