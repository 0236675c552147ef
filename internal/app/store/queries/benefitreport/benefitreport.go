// Package benefitreport provides the read-only aggregations behind the
// benefits dashboard. All window math takes an explicit "now" so callers and
// tests agree on which month and year a disbursement falls in.
package benefitreport

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
)

// TypeUsage holds per-benefit-type counts and totals for the current month,
// the current year, and all time.
type TypeUsage struct {
	TypeID primitive.ObjectID

	MonthUses  int64
	MonthTotal float64

	YearUses  int64
	YearTotal float64

	AllUses  int64
	AllTotal float64
}

// MonthAverage returns the average cost of this month's disbursements, or 0
// when there were none.
func (u TypeUsage) MonthAverage() float64 {
	if u.MonthUses == 0 {
		return 0
	}
	return u.MonthTotal / float64(u.MonthUses)
}

// monthStart returns midnight UTC on the first of now's month.
func monthStart(now time.Time) time.Time {
	return time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, time.UTC)
}

// yearStart returns midnight UTC on January 1 of now's year.
func yearStart(now time.Time) time.Time {
	return time.Date(now.Year(), 1, 1, 0, 0, 0, 0, time.UTC)
}

// windowSums builds the conditional $sum pair for a window start: a count of
// disbursements dated on or after start, and the cost total of the same.
func windowSums(start time.Time) (uses, total bson.M) {
	cond := bson.M{"$gte": []any{"$date", start}}
	uses = bson.M{"$sum": bson.M{"$cond": []any{cond, 1, 0}}}
	total = bson.M{"$sum": bson.M{"$cond": []any{cond, "$cost", 0}}}
	return uses, total
}

// UsageByType aggregates every disbursement grouped by benefit type, with
// month, year, and all-time windows computed in one pass.
func UsageByType(ctx context.Context, db *mongo.Database, now time.Time) (map[primitive.ObjectID]TypeUsage, error) {
	monthUses, monthTotal := windowSums(monthStart(now))
	yearUses, yearTotal := windowSums(yearStart(now))

	pipeline := []bson.M{
		{"$group": bson.M{
			"_id":         "$type_id",
			"month_uses":  monthUses,
			"month_total": monthTotal,
			"year_uses":   yearUses,
			"year_total":  yearTotal,
			"all_uses":    bson.M{"$sum": 1},
			"all_total":   bson.M{"$sum": "$cost"},
		}},
	}

	cur, err := db.Collection("benefits").Aggregate(ctx, pipeline)
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	result := make(map[primitive.ObjectID]TypeUsage)
	for cur.Next(ctx) {
		var row struct {
			ID         primitive.ObjectID `bson:"_id"`
			MonthUses  int64              `bson:"month_uses"`
			MonthTotal float64            `bson:"month_total"`
			YearUses   int64              `bson:"year_uses"`
			YearTotal  float64            `bson:"year_total"`
			AllUses    int64              `bson:"all_uses"`
			AllTotal   float64            `bson:"all_total"`
		}
		if err := cur.Decode(&row); err != nil {
			return nil, err
		}
		result[row.ID] = TypeUsage{
			TypeID:     row.ID,
			MonthUses:  row.MonthUses,
			MonthTotal: row.MonthTotal,
			YearUses:   row.YearUses,
			YearTotal:  row.YearTotal,
			AllUses:    row.AllUses,
			AllTotal:   row.AllTotal,
		}
	}
	return result, cur.Err()
}

// MonthSummary holds the aggregate numbers for the current month across all
// benefit types.
type MonthSummary struct {
	Uses  int64
	Total float64
}

// Average returns the month's average disbursement cost, or 0 when the month
// has no disbursements.
func (m MonthSummary) Average() float64 {
	if m.Uses == 0 {
		return 0
	}
	return m.Total / float64(m.Uses)
}

// SummarizeMonth totals the current month's disbursements across all types.
func SummarizeMonth(ctx context.Context, db *mongo.Database, now time.Time) (MonthSummary, error) {
	pipeline := []bson.M{
		{"$match": bson.M{"date": bson.M{"$gte": monthStart(now)}}},
		{"$group": bson.M{
			"_id":   nil,
			"uses":  bson.M{"$sum": 1},
			"total": bson.M{"$sum": "$cost"},
		}},
	}

	cur, err := db.Collection("benefits").Aggregate(ctx, pipeline)
	if err != nil {
		return MonthSummary{}, err
	}
	defer cur.Close(ctx)

	var summary MonthSummary
	if cur.Next(ctx) {
		var row struct {
			Uses  int64   `bson:"uses"`
			Total float64 `bson:"total"`
		}
		if err := cur.Decode(&row); err != nil {
			return MonthSummary{}, err
		}
		summary.Uses = row.Uses
		summary.Total = row.Total
	}
	return summary, cur.Err()
}

// SeekersServedThisMonth counts the distinct seekers with at least one
// disbursement this month.
func SeekersServedThisMonth(ctx context.Context, db *mongo.Database, now time.Time) (int64, error) {
	ids, err := db.Collection("benefits").Distinct(ctx, "seeker_id",
		bson.M{"date": bson.M{"$gte": monthStart(now)}})
	if err != nil {
		return 0, err
	}
	return int64(len(ids)), nil
}

// SeekerUsage is one row of the month's per-seeker ranking.
type SeekerUsage struct {
	SeekerID primitive.ObjectID `bson:"_id"`
	Uses     int64              `bson:"uses"`
	Total    float64            `bson:"total"`
}

// TopSeekersThisMonth ranks seekers by this month's disbursement count, with
// cost total as the tiebreak, both descending.
func TopSeekersThisMonth(ctx context.Context, db *mongo.Database, now time.Time, limit int64) ([]SeekerUsage, error) {
	if limit <= 0 {
		limit = 10
	}

	pipeline := []bson.M{
		{"$match": bson.M{"date": bson.M{"$gte": monthStart(now)}}},
		{"$group": bson.M{
			"_id":   "$seeker_id",
			"uses":  bson.M{"$sum": 1},
			"total": bson.M{"$sum": "$cost"},
		}},
		{"$sort": bson.D{
			{Key: "uses", Value: -1},
			{Key: "total", Value: -1},
		}},
		{"$limit": limit},
	}

	cur, err := db.Collection("benefits").Aggregate(ctx, pipeline)
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	var rows []SeekerUsage
	if err := cur.All(ctx, &rows); err != nil {
		return nil, err
	}
	return rows, nil
}

// ExportRow is one flattened disbursement for the spreadsheet export, with
// the seeker and type names joined in.
type ExportRow struct {
	Date       time.Time `bson:"date"`
	SeekerName string    `bson:"seeker_name"`
	TypeName   string    `bson:"type_name"`
	Cost       float64   `bson:"cost"`
}

// ExportAll returns every disbursement joined with seeker and type names,
// newest first.
func ExportAll(ctx context.Context, db *mongo.Database) ([]ExportRow, error) {
	pipeline := []bson.M{
		{"$lookup": bson.M{
			"from":         "humans",
			"localField":   "seeker_id",
			"foreignField": "_id",
			"as":           "seeker",
		}},
		{"$unwind": "$seeker"},
		{"$lookup": bson.M{
			"from":         "benefit_types",
			"localField":   "type_id",
			"foreignField": "_id",
			"as":           "type",
		}},
		{"$unwind": "$type"},
		{"$project": bson.M{
			"date": 1,
			"cost": 1,
			"seeker_name": bson.M{"$concat": []any{
				"$seeker.first_names", " ", "$seeker.last_names",
			}},
			"type_name": "$type.name",
		}},
		{"$sort": bson.D{{Key: "date", Value: -1}}},
	}

	cur, err := db.Collection("benefits").Aggregate(ctx, pipeline)
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	var rows []ExportRow
	if err := cur.All(ctx, &rows); err != nil {
		return nil, err
	}
	return rows, nil
}
