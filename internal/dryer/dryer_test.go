package dryer

import (
	"math"
	"testing"

	"github.com/san-kum/shakerbed/internal/config"
)

func TestDeriveCoefficients(t *testing.T) {
	cfg := config.DefaultConfig().Dryer

	co := Derive(cfg)
	if math.Abs(co.PetRelease-0.005*math.Pow(1.4, 4)) > 1e-12 {
		t.Errorf("unexpected pet release coefficient %f", co.PetRelease)
	}
	if math.Abs(co.MassTransfer-0.0167*3.5) > 1e-12 {
		t.Errorf("unexpected mass transfer coefficient %f", co.MassTransfer)
	}
	if co.RegenRate != 1.75 {
		t.Errorf("expected regeneration capped at 1.75 g/min, got %f", co.RegenRate)
	}
}

func TestDeriveColdCartridgeNoRegen(t *testing.T) {
	cfg := config.DefaultConfig().Dryer
	cfg.CartridgeTempC = 100

	if co := Derive(cfg); co.RegenRate != 0 {
		t.Errorf("expected no regeneration below threshold, got %f", co.RegenRate)
	}
}

func TestDeriveMidRangeRegen(t *testing.T) {
	cfg := config.DefaultConfig().Dryer
	cfg.CartridgeTempC = 140

	co := Derive(cfg)
	if math.Abs(co.RegenRate-0.875) > 1e-12 {
		t.Errorf("expected half-scale regeneration 0.875, got %f", co.RegenRate)
	}
}

func TestRunReachesTarget(t *testing.T) {
	cfg := config.DefaultConfig().Dryer

	res := Run(cfg)
	if res.Minutes <= 0 || res.Minutes > maxMinutes {
		t.Fatalf("expected a finite drying time, got %d minutes", res.Minutes)
	}
	if res.FinalMoisture > cfg.TargetMoisture+1e-4 {
		t.Errorf("final moisture %f did not reach target %f", res.FinalMoisture, cfg.TargetMoisture)
	}
	if res.Minutes < 500 || res.Minutes > 5000 {
		t.Errorf("drying time %d minutes outside the plausible range for stock settings", res.Minutes)
	}
	if len(res.Times) != res.Minutes {
		t.Errorf("series length %d does not match %d minutes", len(res.Times), res.Minutes)
	}
	if len(res.PetMoisture) != len(res.CartridgeA) || len(res.CartridgeA) != len(res.CartridgeB) {
		t.Error("series lengths diverge")
	}
}

func TestRunMoistureMonotonicallyFalls(t *testing.T) {
	res := Run(config.DefaultConfig().Dryer)

	for i := 1; i < len(res.PetMoisture); i++ {
		if res.PetMoisture[i] > res.PetMoisture[i-1] {
			t.Fatalf("moisture rose at minute %d: %f -> %f", i+1, res.PetMoisture[i-1], res.PetMoisture[i])
		}
	}
}

func TestRunCapsWithoutAirflow(t *testing.T) {
	cfg := config.DefaultConfig().Dryer
	cfg.AirflowM3PerMin = 0

	res := Run(cfg)
	if res.TargetReached {
		t.Error("expected failure with no airflow")
	}
	if res.Minutes <= maxMinutes {
		t.Errorf("expected the safety cap to trip, stopped at %d minutes", res.Minutes)
	}
}

func TestRunCartridgeSwitching(t *testing.T) {
	cfg := config.DefaultConfig().Dryer

	res := Run(cfg)
	if res.Minutes < 2*cfg.SwitchingMin {
		t.Skipf("run too short to observe a switch: %d minutes", res.Minutes)
	}

	// First hour: A adsorbs while B regenerates toward zero.
	if res.CartridgeA[cfg.SwitchingMin-1] <= res.CartridgeA[0] {
		t.Error("expected the online cartridge to gain moisture during its shift")
	}
	if res.CartridgeB[cfg.SwitchingMin-1] >= res.CartridgeB[0] {
		t.Error("expected the offline cartridge to lose moisture during regeneration")
	}

	// Second hour: roles swapped.
	if res.CartridgeB[2*cfg.SwitchingMin-1] <= res.CartridgeB[cfg.SwitchingMin-1] {
		t.Error("expected cartridge B to gain moisture after the switch")
	}
	if res.CartridgeA[2*cfg.SwitchingMin-1] >= res.CartridgeA[cfg.SwitchingMin-1] {
		t.Error("expected cartridge A to regenerate after the switch")
	}
}
