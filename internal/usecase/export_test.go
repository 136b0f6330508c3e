package usecase

import "time"

// Test hooks for pinning the clock.

func (uc *EntryUseCase) SetClock(now func() time.Time) { uc.now = now }

func (uc *StatsUseCase) SetClock(now func() time.Time) { uc.now = now }

func (uc *WalletUseCase) SetClock(now func() time.Time) { uc.now = now }
