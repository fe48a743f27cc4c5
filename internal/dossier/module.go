// Copyright 2025 healthproof
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
// http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package dossier

import (
	"github.com/healthproof/healthproof/internal/dossier/internal/event"
	"github.com/healthproof/healthproof/internal/dossier/internal/service"
)

type Module struct {
	Svc Service
	C   *DossierEventConsumer
}

type Service = service.Service
type DossierEventConsumer = event.DossierEventConsumer

var ErrJobRunning = service.ErrJobRunning
