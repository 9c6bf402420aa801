package decompose_test

import (
	"fmt"

	"github.com/katalvlaran/bayes/bayesnet"
	"github.com/katalvlaran/bayes/decompose"
)

// ExampleLatentDeterministic factors an alarm whose reading depends on three
// sensors only through whether all of them fired.
func ExampleLatentDeterministic() {
	net := bayesnet.NewNetwork()
	var sensors []*bayesnet.Node
	for _, name := range []string{"s1", "s2", "s3"} {
		s, _ := net.AddNode(name, "fired", "quiet")
		_ = s.SetProbabilities(0.1, 0.9)
		sensors = append(sensors, s)
	}
	alarm, _ := net.AddNode("alarm", "loud", "soft", "off")
	_ = alarm.SetParents(sensors...)
	for c := 0; c < 8; c++ {
		combo := []int{c >> 2 & 1, c >> 1 & 1, c & 1}
		if c == 0 {
			_ = alarm.SetDistribution(combo, 0.9, 0.09, 0.01)
			continue
		}
		_ = alarm.SetDistribution(combo, 0.01, 0.09, 0.9)
	}

	err := decompose.LatentDeterministic{}.Decompose(net, alarm)
	fmt.Println(err)

	latent, _ := net.Node("alarm_latent")
	fmt.Println(latent.Outcomes(), alarm.Parents())
	// Output:
	// <nil>
	// [b0 b1] [alarm_latent]
}
