package render

import (
	"bytes"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/Pallavi2687/cpu-scheduler-frontend/schedclient"
)

var _ = Describe("ResultTable", func() {
	It("should say when there is nothing to show", func() {
		var buf bytes.Buffer

		Expect(ResultTable(&buf, nil, schedclient.Averages{})).To(Succeed())
		Expect(buf.String()).To(Equal(NoResultText + "\n"))
	})

	It("should print rows and averages", func() {
		var buf bytes.Buffer
		rows := []schedclient.Row{
			{PID: 1, Arrival: 0, Burst: 5, Completion: 5, Turnaround: 5, Waiting: 0},
			{PID: 2, Arrival: 1, Burst: 3, Completion: 8, Turnaround: 7, Waiting: 4},
		}
		averages := schedclient.Averages{
			Completion: schedclient.Metric{Value: 6.5, Valid: true},
			Turnaround: schedclient.Metric{Value: 6, Valid: true},
		}

		Expect(ResultTable(&buf, rows, averages)).To(Succeed())

		out := buf.String()
		Expect(out).To(ContainSubstring("PID  Arrival  Burst  Completion  Turnaround  Waiting"))
		Expect(out).To(MatchRegexp(`P2\s+1\s+3\s+8\s+7\s+4`))
		Expect(out).To(ContainSubstring("Average Completion Time: 6.5"))
		Expect(out).To(ContainSubstring("Average Turnaround Time: 6"))
		Expect(out).To(ContainSubstring("Average Waiting Time: N/A"))
	})
})
