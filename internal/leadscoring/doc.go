// Package leadscoring classifies submitted RFQs into HOT, WARM and COLD sales
// leads using an additive point heuristic, and persists the results to the
// rfq_lead_scores table.
package leadscoring
