package analytics

import (
	"fmt"
	"sort"

	"github.com/shopspring/decimal"

	"example.com/routine/internal/domain"
)

// TimeMoneyDay is one day's joined view of time spent and money moved.
type TimeMoneyDay struct {
	Date              string
	ActivityCount     int
	TotalHours        float64
	InterruptionCount int
	DailyExpenses     float64
	DailyIncome       float64
}

// EnergySpendingDay is one day's joined view of energy state and spending.
type EnergySpendingDay struct {
	Date          string
	EnergyLevel   int
	StressLevel   int
	DailyExpenses float64
	ExpenseCount  int
}

// InterruptionTaskDay is one day's joined view of task throughput and
// interruptions.
type InterruptionTaskDay struct {
	Date              string
	TotalTasks        int
	CompletedTasks    int
	InterruptionCount int
	CompletionRate    float64
}

// Insight is a qualitative, rule-derived observation spanning domains.
type Insight struct {
	Type           string
	Title          string
	Description    string
	Data           map[string]any
	Recommendation string
}

// TimeMoneyCorrelation joins activities, interruptions, and transactions on
// calendar date. Buckets are created by activities or transactions;
// interruptions only annotate days that already exist, so an interruption on
// an otherwise empty day is dropped rather than fabricating a zero-time,
// zero-money record.
func TimeMoneyCorrelation(activities []domain.Activity, interruptions []domain.Interruption, transactions []domain.Transaction) []TimeMoneyDay {
	type bucket struct {
		activityCount     int
		totalHours        float64
		interruptionCount int
		expenses          decimal.Decimal
		income            decimal.Decimal
	}

	buckets := make(map[string]*bucket)

	for _, a := range activities {
		key := DayKey(a.StartTime)
		b, ok := buckets[key]
		if !ok {
			b = &bucket{}
			buckets[key] = b
		}
		b.activityCount++
		b.totalHours += a.EndTime.Sub(a.StartTime).Hours()
	}

	for _, i := range interruptions {
		if b, ok := buckets[DayKey(i.Time)]; ok {
			b.interruptionCount++
		}
	}

	for _, t := range transactions {
		key := t.Date.String()
		b, ok := buckets[key]
		if !ok {
			b = &bucket{}
			buckets[key] = b
		}
		if t.Type == domain.TransactionExpense {
			b.expenses = b.expenses.Add(t.Amount)
		} else {
			b.income = b.income.Add(t.Amount)
		}
	}

	days := make([]TimeMoneyDay, 0, len(buckets))
	for key, b := range buckets {
		days = append(days, TimeMoneyDay{
			Date:              key,
			ActivityCount:     b.activityCount,
			TotalHours:        round2(b.totalHours),
			InterruptionCount: b.interruptionCount,
			DailyExpenses:     b.expenses.Round(2).InexactFloat64(),
			DailyIncome:       b.income.Round(2).InexactFloat64(),
		})
	}
	sort.Slice(days, func(i, j int) bool { return days[i].Date < days[j].Date })
	return days
}

// EnergySpendingCorrelation joins energy logs with expenses by date. Only days
// with an energy log produce records: spending on an unlogged day has no
// energy reading to correlate against, so those transactions are ignored
// rather than reported with fabricated levels.
func EnergySpendingCorrelation(logs []domain.EnergyLog, transactions []domain.Transaction) []EnergySpendingDay {
	type bucket struct {
		energyLevel  int
		stressLevel  int
		expenses     decimal.Decimal
		expenseCount int
	}

	buckets := make(map[string]*bucket)
	for _, l := range logs {
		buckets[l.Date.String()] = &bucket{
			energyLevel: l.EnergyLevel,
			stressLevel: l.StressLevel,
		}
	}

	for _, t := range transactions {
		b, ok := buckets[t.Date.String()]
		if !ok || t.Type != domain.TransactionExpense {
			continue
		}
		b.expenses = b.expenses.Add(t.Amount)
		b.expenseCount++
	}

	days := make([]EnergySpendingDay, 0, len(buckets))
	for key, b := range buckets {
		days = append(days, EnergySpendingDay{
			Date:          key,
			EnergyLevel:   b.energyLevel,
			StressLevel:   b.stressLevel,
			DailyExpenses: b.expenses.Round(2).InexactFloat64(),
			ExpenseCount:  b.expenseCount,
		})
	}
	sort.Slice(days, func(i, j int) bool { return days[i].Date < days[j].Date })
	return days
}

// InterruptionTaskCorrelation joins tasks (by due date) with interruptions.
// Buckets come from tasks only; tasks without a due date are skipped, and
// interruptions on days with no due tasks are dropped.
func InterruptionTaskCorrelation(tasks []domain.Task, interruptions []domain.Interruption) []InterruptionTaskDay {
	type bucket struct {
		total       int
		completed   int
		interrupted int
	}

	buckets := make(map[string]*bucket)
	for _, t := range tasks {
		if t.DueDate == nil {
			continue
		}
		key := t.DueDate.String()
		b, ok := buckets[key]
		if !ok {
			b = &bucket{}
			buckets[key] = b
		}
		b.total++
		if t.Status == domain.TaskCompleted {
			b.completed++
		}
	}

	for _, i := range interruptions {
		if b, ok := buckets[DayKey(i.Time)]; ok {
			b.interrupted++
		}
	}

	days := make([]InterruptionTaskDay, 0, len(buckets))
	for key, b := range buckets {
		rate := 0.0
		if b.total > 0 {
			rate = float64(b.completed) / float64(b.total) * 100
		}
		days = append(days, InterruptionTaskDay{
			Date:              key,
			TotalTasks:        b.total,
			CompletedTasks:    b.completed,
			InterruptionCount: b.interrupted,
			CompletionRate:    round1(rate),
		})
	}
	sort.Slice(days, func(i, j int) bool { return days[i].Date < days[j].Date })
	return days
}

// CrossDomainInsights evaluates the qualitative insight rules in definition
// order: energy-vs-spending, deep-work volume, then task completion. Each
// rule fires independently; emission order never reflects significance.
func CrossDomainInsights(logs []domain.EnergyLog, transactions []domain.Transaction, activities []domain.Activity, tasks []domain.Task, windowDays int) []Insight {
	insights := make([]Insight, 0)

	if insight, ok := energySpendingInsight(logs, transactions); ok {
		insights = append(insights, insight)
	}

	deepCount, shallowCount := 0, 0
	for _, a := range activities {
		if a.WorkType == nil {
			continue
		}
		switch *a.WorkType {
		case domain.WorkTypeDeep:
			deepCount++
		case domain.WorkTypeShallow:
			shallowCount++
		}
	}
	if deepCount > 0 {
		insights = append(insights, Insight{
			Type:        "focus_quality",
			Title:       "Deep Work Sessions",
			Description: fmt.Sprintf("You've logged %d deep work sessions in the last %d days.", deepCount, windowDays),
			Data: map[string]any{
				"deep_work_count":    deepCount,
				"shallow_work_count": shallowCount,
			},
			Recommendation: "Schedule more deep work blocks during your peak energy hours.",
		})
	}

	if len(tasks) > 0 {
		completed := 0
		for _, t := range tasks {
			if t.Status == domain.TaskCompleted {
				completed++
			}
		}
		rate := float64(completed) / float64(len(tasks)) * 100
		if rate < 60 {
			insights = append(insights, Insight{
				Type:        "task_completion",
				Title:       "Task Completion Rate",
				Description: fmt.Sprintf("Your task completion rate is %.1f%%.", rate),
				Data: map[string]any{
					"completion_rate": round1(rate),
					"total_tasks":     len(tasks),
					"completed":       completed,
				},
				Recommendation: "Consider breaking down large tasks or scheduling them during high-energy periods.",
			})
		}
	}

	return insights
}

// energySpendingInsight fires when mean spending on low-energy days exceeds
// mean spending on high-energy days by more than 20%. Both populations must
// be non-empty and the high-energy mean positive, otherwise there is no
// reference to compare against.
func energySpendingInsight(logs []domain.EnergyLog, transactions []domain.Transaction) (Insight, bool) {
	lowDates := make(map[string]struct{})
	highDates := make(map[string]struct{})
	for _, l := range logs {
		switch {
		case l.EnergyLevel <= 2:
			lowDates[l.Date.String()] = struct{}{}
		case l.EnergyLevel >= 4:
			highDates[l.Date.String()] = struct{}{}
		}
	}
	if len(lowDates) == 0 || len(highDates) == 0 {
		return Insight{}, false
	}

	var lowSpend, highSpend decimal.Decimal
	for _, t := range transactions {
		if t.Type != domain.TransactionExpense {
			continue
		}
		key := t.Date.String()
		if _, ok := lowDates[key]; ok {
			lowSpend = lowSpend.Add(t.Amount)
		}
		if _, ok := highDates[key]; ok {
			highSpend = highSpend.Add(t.Amount)
		}
	}

	avgLow := lowSpend.Div(decimal.NewFromInt(int64(len(lowDates))))
	avgHigh := highSpend.Div(decimal.NewFromInt(int64(len(highDates))))

	if !avgHigh.IsPositive() || !avgLow.GreaterThan(avgHigh.Mul(decimal.NewFromFloat(1.2))) {
		return Insight{}, false
	}

	diffPct := avgLow.Sub(avgHigh).Div(avgHigh).Mul(decimal.NewFromInt(100))
	return Insight{
		Type:  "energy_spending",
		Title: "Low Energy Days → Higher Spending",
		Description: fmt.Sprintf("On low-energy days, you spend $%s on average vs $%s on high-energy days.",
			avgLow.StringFixed(2), avgHigh.StringFixed(2)),
		Data: map[string]any{
			"low_energy_avg":     avgLow.Round(2).InexactFloat64(),
			"high_energy_avg":    avgHigh.Round(2).InexactFloat64(),
			"difference_percent": diffPct.Round(1).InexactFloat64(),
		},
		Recommendation: "Consider planning lighter tasks on low-energy days to reduce impulse spending.",
	}, true
}
