package equipment

import "github.com/m04kA/SMC-RoomBookingService/pkg/dbmetrics"

type DBExecutor = dbmetrics.DBExecutor
