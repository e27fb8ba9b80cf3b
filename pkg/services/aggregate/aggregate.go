// Package aggregate turns filtered extract rows into summary tables.
//
// Every function is pure: inputs are never modified and the returned slices
// are freshly allocated, so calling a function twice on the same rows yields
// equal results. Rows with an empty grouping key or id are skipped, the same
// way null keys are dropped when grouping.
package aggregate

import (
	"sort"
	"time"

	"github.com/de-tools/commerce-atlas/pkg/models/domain"
	"github.com/shopspring/decimal"
)

type dayBucket struct {
	date    time.Time
	ids     map[string]struct{}
	revenue decimal.Decimal
}

// resampleDaily buckets rows by calendar day, counting distinct ids and
// summing values. Buckets come back ascending by date.
func resampleDaily[T any](rows []T, timestamp func(T) time.Time, id func(T) string, value func(T) float64) []*dayBucket {
	index := make(map[string]*dayBucket)
	buckets := make([]*dayBucket, 0)

	for _, row := range rows {
		day := domain.Day(timestamp(row))
		key := day.Format(domain.DateLayout)
		b, ok := index[key]
		if !ok {
			b = &dayBucket{date: day, ids: make(map[string]struct{})}
			index[key] = b
			buckets = append(buckets, b)
		}
		if rowID := id(row); rowID != "" {
			b.ids[rowID] = struct{}{}
		}
		if value != nil {
			b.revenue = b.revenue.Add(decimal.NewFromFloat(value(row)))
		}
	}

	sort.Slice(buckets, func(i, j int) bool { return buckets[i].date.Before(buckets[j].date) })
	return buckets
}

// DailyOrders counts distinct orders and sums payment values per purchase
// day. Every payment row contributes to revenue. Days without orders are
// omitted; see FillOrderGaps.
func DailyOrders(orders []domain.Order) []domain.DailyOrders {
	buckets := resampleDaily(orders,
		func(o domain.Order) time.Time { return o.PurchasedAt },
		func(o domain.Order) string { return o.OrderID },
		func(o domain.Order) float64 { return o.PaymentValue },
	)

	daily := make([]domain.DailyOrders, 0, len(buckets))
	for _, b := range buckets {
		daily = append(daily, domain.DailyOrders{
			Date:       b.date,
			OrderCount: len(b.ids),
			Revenue:    b.revenue.InexactFloat64(),
		})
	}
	return daily
}

// DailyCancellations counts distinct canceled orders per purchase day.
func DailyCancellations(orders []domain.Order) []domain.DailyCancellations {
	canceled := make([]domain.Order, 0)
	for _, o := range orders {
		if o.Status == domain.OrderStatusCanceled {
			canceled = append(canceled, o)
		}
	}

	buckets := resampleDaily(canceled,
		func(o domain.Order) time.Time { return o.PurchasedAt },
		func(o domain.Order) string { return o.OrderID },
		nil,
	)

	daily := make([]domain.DailyCancellations, 0, len(buckets))
	for _, b := range buckets {
		daily = append(daily, domain.DailyCancellations{Date: b.date, CancelCount: len(b.ids)})
	}
	return daily
}

// CustomersByState counts distinct customers per customer state, most
// populated state first.
func CustomersByState(orders []domain.Order) []domain.StateCount {
	members := make([]domain.StateMember, 0, len(orders))
	for _, o := range orders {
		members = append(members, domain.StateMember{ID: o.CustomerID, State: o.CustomerState})
	}
	return CountByState(members)
}

// SellersByState counts distinct sellers per seller state, most populated
// state first.
func SellersByState(sellers []domain.Seller) []domain.StateCount {
	members := make([]domain.StateMember, 0, len(sellers))
	for _, s := range sellers {
		members = append(members, domain.StateMember{ID: s.SellerID, State: s.State})
	}
	return CountByState(members)
}

// CountByState counts distinct ids per state. The result is ordered by
// count descending; states with equal counts keep the order in which they
// first appear in members.
func CountByState(members []domain.StateMember) []domain.StateCount {
	index := make(map[string]int)
	seen := make(map[string]map[string]struct{})
	counts := make([]domain.StateCount, 0)

	for _, m := range members {
		if m.State == "" || m.ID == "" {
			continue
		}
		i, ok := index[m.State]
		if !ok {
			i = len(counts)
			index[m.State] = i
			seen[m.State] = make(map[string]struct{})
			counts = append(counts, domain.StateCount{State: m.State})
		}
		if _, dup := seen[m.State][m.ID]; dup {
			continue
		}
		seen[m.State][m.ID] = struct{}{}
		counts[i].Count++
	}

	sort.SliceStable(counts, func(i, j int) bool { return counts[i].Count > counts[j].Count })
	return counts
}

// PaymentMethodCounts counts payment rows per payment type. Rows are
// occurrences, so an order paid in two installments of the same type counts
// twice. Output is ordered by payment type; ranking is left to the caller.
func PaymentMethodCounts(payments []domain.Payment) []domain.PaymentMethodCount {
	counts := make(map[string]int)
	for _, p := range payments {
		if p.Type == "" || p.OrderID == "" {
			continue
		}
		counts[p.Type]++
	}

	result := make([]domain.PaymentMethodCount, 0, len(counts))
	for _, t := range sortedKeys(counts) {
		result = append(result, domain.PaymentMethodCount{Type: t, OrderCount: counts[t]})
	}
	return result
}

// PaymentMethodRevenue sums payment values per payment type, ordered by
// payment type.
func PaymentMethodRevenue(payments []domain.Payment) []domain.PaymentMethodRevenue {
	sums := make(map[string]decimal.Decimal)
	for _, p := range payments {
		if p.Type == "" {
			continue
		}
		sums[p.Type] = sums[p.Type].Add(decimal.NewFromFloat(p.Value))
	}

	result := make([]domain.PaymentMethodRevenue, 0, len(sums))
	for _, t := range sortedKeys(sums) {
		result = append(result, domain.PaymentMethodRevenue{Type: t, Revenue: sums[t].InexactFloat64()})
	}
	return result
}

func sortedKeys[V any](m map[string]V) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
