// Package analysis provides convergence diagnostics for recovery summaries.
//
// The package characterises how recovery error scales with sample size:
//
//   - [Convergence]: log-log slope of mean squared error against N
//   - [Trend]: per-parameter slope, fit quality and monotonicity
//
// # Consistency Check
//
// For a consistent estimator the squared error falls roughly as 1/N, so the
// fitted slope should sit near -1:
//
//	trends, _ := analysis.Convergence(rows)
//	for _, tr := range trends {
//	    if !tr.Monotone || tr.Slope > -0.5 {
//	        // recovery is not improving with more trials
//	    }
//	}
package analysis
