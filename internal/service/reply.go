package service

import (
	"fmt"
	"strconv"
	"strings"

	"WeatherBot/internal/weather"
)

const (
	startCommand  = "/start"
	commandPrefix = "/"

	noData = "нет данных"
)

const welcomeText = "Привет! Я бот, который сообщает текущую погоду по городам.\n\n" +
	"Как пользоваться ботом:\n" +
	"1. Введите название города, и я отправлю вам информацию о погоде в этом городе.\n" +
	"2. Убедитесь, что город введен правильно, чтобы получить корректные данные.\n\n" +
	"Пример: Москва\n\n" +
	"Наслаждайтесь использованием бота!"

// formatReport renders the four-line weather reply. Temperature is required.
func formatReport(city string, info weather.Info) (string, error) {
	if info.Temperature == nil {
		return "", fmt.Errorf("no temperature in weather data for %q", city)
	}

	humidity := noData
	if info.Humidity != nil {
		humidity = strconv.FormatInt(*info.Humidity, 10) + "%"
	}

	condition := noData
	if info.Condition != nil {
		condition = *info.Condition
	}

	var b strings.Builder
	fmt.Fprintf(&b, "Текущая погода в %s:\n", city)
	fmt.Fprintf(&b, "Температура: %.2f°C\n", *info.Temperature)
	fmt.Fprintf(&b, "Влажность: %s\n", humidity)
	fmt.Fprintf(&b, "Описание: %s", condition)

	return b.String(), nil
}

func failureText(err error) string {
	return "Сбой в работе программы: " + err.Error()
}
