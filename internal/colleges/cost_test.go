package colleges

import "testing"

func TestEstimateCost(t *testing.T) {
	tests := []struct {
		name    string
		c       Candidate
		housing string
		want    CostEstimate
	}{
		{
			name:    "on campus with aid",
			c:       Candidate{Tuition: f(6381), PellRate: f(0.9)},
			housing: "on_campus",
			want:    CostEstimate{Tuition: 6381, Housing: 11500, Books: 1250, AidOffset: 4050, Net: 15081},
		},
		{
			name:    "commuter",
			c:       Candidate{Tuition: f(6381)},
			housing: "commute",
			want:    CostEstimate{Tuition: 6381, Housing: 1800, Books: 1250, Net: 9431},
		},
		{
			name:    "off campus discount",
			c:       Candidate{Tuition: f(10000)},
			housing: "off_campus",
			want:    CostEstimate{Tuition: 10000, Housing: 9775, Books: 1250, Net: 21025},
		},
		{
			name:    "missing tuition assumed",
			c:       Candidate{},
			housing: "commute",
			want:    CostEstimate{Tuition: 12000, Housing: 1800, Books: 1250, Net: 15050, Assumed: true},
		},
		{
			name:    "percent-form pell rate",
			c:       Candidate{Tuition: f(6381), PellRate: f(90)},
			housing: "on_campus",
			want:    CostEstimate{Tuition: 6381, Housing: 11500, Books: 1250, AidOffset: 4050, Net: 15081},
		},
		{
			name:    "unrecognized housing defaults to on campus",
			c:       Candidate{Tuition: f(6381)},
			housing: "houseboat",
			want:    CostEstimate{Tuition: 6381, Housing: 11500, Books: 1250, Net: 19131},
		},
		{
			name:    "net floors at zero",
			c:       Candidate{Tuition: f(0), PellRate: f(1.0)},
			housing: "commute",
			want:    CostEstimate{Tuition: 0, Housing: 1800, Books: 1250, AidOffset: 4500, Net: 0},
		},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			got := EstimateCost(tt.c, tt.housing)
			if got != tt.want {
				t.Fatalf("EstimateCost = %+v, want %+v", got, tt.want)
			}
		})
	}
}
