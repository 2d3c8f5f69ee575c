// Package ez implements the EZ-diffusion model in both directions.
//
// The package translates between diffusion parameters and the three summary
// statistics the EZ model is built on:
//
//   - [Parameters]: drift rate v, boundary separation a, nondecision time t
//   - [Statistics]: accuracy, mean RT and RT variance
//   - [Forward]: closed-form predicted statistics for a parameter set
//   - [SimulateObserved]: noisy finite-sample estimates for n trials
//   - [Inverse]: algebraic recovery of parameters from statistics
//
// # Example
//
//	src := rand.NewPCG(42, 0)
//	obs, _ := ez.SimulateObserved(ez.Parameters{V: 1, A: 1, T: 0.3}, 100, src)
//	est, err := ez.Inverse(obs)
//
// # Thread Safety
//
// Every function is pure apart from the random source it is handed. Sources
// such as *rand.PCG are NOT safe for concurrent use; give each goroutine its
// own.
package ez
