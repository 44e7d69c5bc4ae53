package report

import (
	"fmt"
	"time"

	"bikestock-backend/internal/apierror"

	"github.com/gofiber/fiber/v2"
)

func parseDay(value string) (time.Time, error) {
	return time.ParseInLocation("2006-01-02", value, time.Local)
}

func parsePeriod(c *fiber.Ctx) (time.Time, time.Time, error) {
	start, err := parseDay(c.Query("baslangic", time.Now().Format("2006-01-02")))
	if err != nil {
		return time.Time{}, time.Time{}, fiber.NewError(fiber.StatusBadRequest, "baslangic tarihi YYYY-AA-GG formatında olmalı")
	}
	end, err := parseDay(c.Query("bitis", time.Now().Format("2006-01-02")))
	if err != nil {
		return time.Time{}, time.Time{}, fiber.NewError(fiber.StatusBadRequest, "bitis tarihi YYYY-AA-GG formatında olmalı")
	}
	if end.Before(start) {
		return time.Time{}, time.Time{}, fiber.NewError(fiber.StatusBadRequest, "bitis tarihi baslangic tarihinden önce olamaz")
	}
	return start, end, nil
}

// GET /api/reports/daily?tarih=2026-08-29
func DailyHandler(svc *Service) fiber.Handler {
	return func(c *fiber.Ctx) error {
		day, err := parseDay(c.Query("tarih", time.Now().Format("2006-01-02")))
		if err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "tarih YYYY-AA-GG formatında olmalı")
		}

		report, err := svc.Daily(c.UserContext(), day)
		if err != nil {
			return apierror.ToFiber(err)
		}
		return c.JSON(report)
	}
}

// GET /api/reports/period?baslangic=2026-08-01&bitis=2026-08-29
func PeriodHandler(svc *Service) fiber.Handler {
	return func(c *fiber.Ctx) error {
		start, end, err := parsePeriod(c)
		if err != nil {
			return err
		}

		report, err := svc.Period(c.UserContext(), start, end)
		if err != nil {
			return apierror.ToFiber(err)
		}
		return c.JSON(report)
	}
}

// GET /api/reports/period/excel?baslangic=...&bitis=...
func PeriodExcelHandler(svc *Service) fiber.Handler {
	return func(c *fiber.Ctx) error {
		start, end, err := parsePeriod(c)
		if err != nil {
			return err
		}

		report, err := svc.Period(c.UserContext(), start, end)
		if err != nil {
			return apierror.ToFiber(err)
		}

		f, err := WriteExcel(report)
		if err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Excel dosyası oluşturulamadı")
		}

		filename := fmt.Sprintf("donem_raporu_%s_%s.xlsx", report.Start, report.End)
		c.Set(fiber.HeaderContentType, "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
		c.Set(fiber.HeaderContentDisposition, fmt.Sprintf("attachment; filename=%s", filename))

		buf, err := f.WriteToBuffer()
		if err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Excel dosyası yazılamadı")
		}
		return c.Send(buf.Bytes())
	}
}
