package analytics

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"

	"example.com/routine/internal/domain"
)

func activityOn(t time.Time, hours float64) domain.Activity {
	return domain.Activity{
		Category:  domain.CategoryCoding,
		StartTime: t,
		EndTime:   t.Add(time.Duration(hours * float64(time.Hour))),
	}
}

func expenseOn(d domain.Date, amount string) domain.Transaction {
	return domain.Transaction{
		Type:     domain.TransactionExpense,
		Amount:   decimal.RequireFromString(amount),
		Category: "food",
		Date:     d,
	}
}

func TestTimeMoneyCorrelationJoinsByDay(t *testing.T) {
	d1 := day(2026, time.April, 1)
	d2 := day(2026, time.April, 2)

	activities := []domain.Activity{
		activityOn(d1.Add(9*time.Hour), 2),
		activityOn(d1.Add(14*time.Hour), 1.5),
	}
	interruptions := []domain.Interruption{
		{Time: d1.Add(10 * time.Hour), Type: domain.InterruptionPhone},
	}
	transactions := []domain.Transaction{
		expenseOn(domain.DateOf(d1), "12.50"),
		{Type: domain.TransactionIncome, Amount: decimal.RequireFromString("100.00"), Date: domain.DateOf(d2)},
	}

	got := TimeMoneyCorrelation(activities, interruptions, transactions)
	require.Len(t, got, 2)

	require.Equal(t, "2026-04-01", got[0].Date)
	require.Equal(t, 2, got[0].ActivityCount)
	require.Equal(t, 3.5, got[0].TotalHours)
	require.Equal(t, 1, got[0].InterruptionCount)
	require.Equal(t, 12.5, got[0].DailyExpenses)
	require.Equal(t, 0.0, got[0].DailyIncome)

	require.Equal(t, "2026-04-02", got[1].Date)
	require.Equal(t, 0, got[1].ActivityCount)
	require.Equal(t, 100.0, got[1].DailyIncome)
}

func TestTimeMoneyCorrelationDropsOrphanInterruptions(t *testing.T) {
	lone := domain.Interruption{Time: day(2026, time.April, 3).Add(11 * time.Hour), Type: domain.InterruptionNoise}

	got := TimeMoneyCorrelation(nil, []domain.Interruption{lone}, nil)
	require.Empty(t, got, "interruptions alone never create a day record")
}

func TestEnergySpendingCorrelationBucketsFromLogsOnly(t *testing.T) {
	logged := domain.DateOf(day(2026, time.April, 1))
	unlogged := domain.DateOf(day(2026, time.April, 2))

	logs := []domain.EnergyLog{
		{Date: logged, EnergyLevel: 2, StressLevel: 4},
	}
	transactions := []domain.Transaction{
		expenseOn(logged, "20.00"),
		expenseOn(logged, "5.25"),
		expenseOn(unlogged, "999.00"),
		{Type: domain.TransactionIncome, Amount: decimal.RequireFromString("50.00"), Date: logged},
	}

	got := EnergySpendingCorrelation(logs, transactions)
	require.Len(t, got, 1)
	require.Equal(t, "2026-04-01", got[0].Date)
	require.Equal(t, 2, got[0].EnergyLevel)
	require.Equal(t, 4, got[0].StressLevel)
	require.Equal(t, 25.25, got[0].DailyExpenses)
	require.Equal(t, 2, got[0].ExpenseCount, "income never counts as an expense")
}

func TestInterruptionTaskCorrelation(t *testing.T) {
	due := domain.DateOf(day(2026, time.April, 5))

	tasks := []domain.Task{
		{Title: "write report", DueDate: &due, Status: domain.TaskCompleted},
		{Title: "review PR", DueDate: &due, Status: domain.TaskPending},
		{Title: "no due date", Status: domain.TaskPending},
	}
	interruptions := []domain.Interruption{
		{Time: due.Time().Add(10 * time.Hour), Type: domain.InterruptionPhone},
		{Time: due.Time().Add(15 * time.Hour), Type: domain.InterruptionNoise},
		{Time: day(2026, time.April, 6).Add(9 * time.Hour), Type: domain.InterruptionPhone},
	}

	got := InterruptionTaskCorrelation(tasks, interruptions)
	require.Len(t, got, 1)
	require.Equal(t, "2026-04-05", got[0].Date)
	require.Equal(t, 2, got[0].TotalTasks)
	require.Equal(t, 1, got[0].CompletedTasks)
	require.Equal(t, 2, got[0].InterruptionCount)
	require.Equal(t, 50.0, got[0].CompletionRate)
}

func TestCrossDomainInsightsEnergySpendingRule(t *testing.T) {
	lowDay := domain.DateOf(day(2026, time.April, 1))
	highDay := domain.DateOf(day(2026, time.April, 2))

	logs := []domain.EnergyLog{
		{Date: lowDay, EnergyLevel: 1, StressLevel: 4},
		{Date: highDay, EnergyLevel: 5, StressLevel: 2},
	}
	transactions := []domain.Transaction{
		expenseOn(lowDay, "60.00"),
		expenseOn(highDay, "10.00"),
	}

	got := CrossDomainInsights(logs, transactions, nil, nil, 30)
	require.Len(t, got, 1)
	require.Equal(t, "energy_spending", got[0].Type)
	require.Equal(t, 60.0, got[0].Data["low_energy_avg"])
	require.Equal(t, 10.0, got[0].Data["high_energy_avg"])
	require.Equal(t, 500.0, got[0].Data["difference_percent"])
}

func TestCrossDomainInsightsNoHighEnergySpendNoRule(t *testing.T) {
	lowDay := domain.DateOf(day(2026, time.April, 1))
	highDay := domain.DateOf(day(2026, time.April, 2))

	logs := []domain.EnergyLog{
		{Date: lowDay, EnergyLevel: 1, StressLevel: 4},
		{Date: highDay, EnergyLevel: 5, StressLevel: 2},
	}
	transactions := []domain.Transaction{
		expenseOn(lowDay, "60.00"),
	}

	got := CrossDomainInsights(logs, transactions, nil, nil, 30)
	require.Empty(t, got, "a zero high-energy mean gives no baseline to compare")
}

func TestCrossDomainInsightsRuleOrder(t *testing.T) {
	lowDay := domain.DateOf(day(2026, time.April, 1))
	highDay := domain.DateOf(day(2026, time.April, 2))

	logs := []domain.EnergyLog{
		{Date: lowDay, EnergyLevel: 1, StressLevel: 3},
		{Date: highDay, EnergyLevel: 4, StressLevel: 2},
	}
	transactions := []domain.Transaction{
		expenseOn(lowDay, "100.00"),
		expenseOn(highDay, "10.00"),
	}

	deep := domain.WorkTypeDeep
	activities := []domain.Activity{
		{Category: domain.CategoryCoding, StartTime: lowDay.Time(), EndTime: lowDay.Time().Add(time.Hour), WorkType: &deep},
	}
	tasks := []domain.Task{
		{Title: "a", Status: domain.TaskPending},
		{Title: "b", Status: domain.TaskCompleted},
		{Title: "c", Status: domain.TaskPending},
	}

	got := CrossDomainInsights(logs, transactions, activities, tasks, 30)
	require.Len(t, got, 3)
	require.Equal(t, "energy_spending", got[0].Type)
	require.Equal(t, "focus_quality", got[1].Type)
	require.Equal(t, "task_completion", got[2].Type)
	require.Equal(t, 1, got[1].Data["deep_work_count"])
	require.Equal(t, 33.3, got[2].Data["completion_rate"])
}
