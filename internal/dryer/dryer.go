// Package dryer models the desiccant drying loop that prepares pellet
// batches before they reach the shaker bed. Two silica cartridges swap
// between adsorbing moisture from the process air and regenerating under
// heat, minute by minute, until the resin hits its target moisture.
package dryer

import (
	"math"

	"github.com/san-kum/shakerbed/internal/config"
)

// maxMinutes caps a run whose settings can never reach the target.
const maxMinutes = 50000

// Regeneration effectiveness ramps linearly between these temperatures.
const (
	basePetRelease     = 0.005
	massTransferPerM3  = 0.0167
	maxRegenGPerMin    = 1.75
	regenThresholdTemp = 120.0
	regenPeakTemp      = 160.0
)

// Coefficients are the engine rates derived from machine settings.
type Coefficients struct {
	PetRelease   float64 // g moisture released per minute per % moisture
	MassTransfer float64 // g moved per minute per % driving force
	RegenRate    float64 // g stripped per minute from the offline cartridge
}

// Derive converts machine operating conditions into engine coefficients.
// Release scales with the fourth power of the chamber temperature ratio,
// transfer linearly with airflow, regeneration linearly with cartridge
// temperature between its threshold and peak.
func Derive(cfg config.DryerConfig) Coefficients {
	co := Coefficients{
		PetRelease:   basePetRelease * math.Pow(cfg.PetTempC/100.0, 4.0),
		MassTransfer: massTransferPerM3 * cfg.AirflowM3PerMin,
	}
	if cfg.CartridgeTempC >= regenThresholdTemp {
		scale := (cfg.CartridgeTempC - regenThresholdTemp) / (regenPeakTemp - regenThresholdTemp)
		co.RegenRate = maxRegenGPerMin * math.Min(scale, 1.0)
	}
	return co
}

// Result holds the minute-by-minute drying series.
type Result struct {
	Minutes       int
	TargetReached bool
	FinalMoisture float64
	Coefficients  Coefficients

	Times       []float64
	PetMoisture []float64
	CartridgeA  []float64
	CartridgeB  []float64
}

// Run simulates the hopper until the resin reaches its target moisture
// or the safety cap expires. Each minute the online cartridge adsorbs
// the lesser of what the air can carry and what the resin releases,
// while the offline cartridge regenerates.
func Run(cfg config.DryerConfig) *Result {
	co := Derive(cfg)

	petWaterKg := cfg.PetMassKg * cfg.InitialMoisture / 100.0
	cartA := cfg.SilicaMassG * cfg.InitialSilicaPct / 100.0
	cartB := cartA
	onlineA := true
	moisture := cfg.InitialMoisture

	res := &Result{Coefficients: co}

	minute := 0
	for round4(moisture) > cfg.TargetMoisture {
		minute++

		surface := cartB
		if onlineA {
			surface = cartA
		}
		surfacePct := surface / cfg.SilicaMassG * 100.0
		drivingForce := math.Max(0, cfg.MaxSilicaPct-surfacePct)

		demand := co.MassTransfer * drivingForce * (moisture / 100.0)
		supply := co.PetRelease * moisture
		removed := math.Min(demand, supply)

		petWaterKg -= removed / 1000.0
		if onlineA {
			cartA += removed
			cartB = math.Max(0, cartB-co.RegenRate)
		} else {
			cartB += removed
			cartA = math.Max(0, cartA-co.RegenRate)
		}
		moisture = petWaterKg / cfg.PetMassKg * 100.0

		res.Times = append(res.Times, float64(minute))
		res.PetMoisture = append(res.PetMoisture, moisture)
		res.CartridgeA = append(res.CartridgeA, cartA/cfg.SilicaMassG*100.0)
		res.CartridgeB = append(res.CartridgeB, cartB/cfg.SilicaMassG*100.0)

		if minute%cfg.SwitchingMin == 0 {
			onlineA = !onlineA
		}
		if minute > maxMinutes {
			break
		}
	}

	res.Minutes = minute
	res.FinalMoisture = moisture
	res.TargetReached = moisture <= cfg.TargetMoisture
	return res
}

func round4(x float64) float64 {
	return math.Round(x*1e4) / 1e4
}
